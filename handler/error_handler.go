package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/requestid"
)

type ErrorPageParams struct {
	StatusCode int
	Key        string
	Message    string
	RequestID  string
	RetryURL   string
}

type ErrorToastParams struct {
	Key       string
	Message   string
	Type      string // error, warning
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string                    // default "#toasts"
	ToastMode   datastar.ElementPatchMode // default prepend
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Key        string
	Message    string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternalServerError.Code,
		Key:        ErrInternalServerError.Key,
		Message:    ErrInternalServerError.Text(),
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Key = httpErr.Key
		info.Message = httpErr.Text()
	}

	var valErr ValidationError
	if errors.As(err, &valErr) {
		info.StatusCode = http.StatusUnprocessableEntity
		info.Key = "validation_error"
		info.Message = valErr.Error()
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func logError(log *slog.Logger, r *http.Request, err error, info ErrorInfo) {
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("datastar", IsDataStar(r)),
		logger.Component("error_handler"),
	)
}

// NewErrorHandler renders a full error page for regular requests and a
// toast patch for DataStar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx Context, err error) {
		r, w := ctx.Request(), ctx.ResponseWriter()
		info := classifyError(err)
		logError(log, r, err, info)
		reqID := requestid.FromContext(r.Context())

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				http.Error(w, info.Message, info.StatusCode)
				return
			}
			typ := "error"
			if info.StatusCode < http.StatusInternalServerError {
				typ = "warning"
			}
			toast := cfg.ErrorToast(ErrorToastParams{Key: info.Key, Message: info.Message, Type: typ, RequestID: reqID})
			if rerr := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode)).Render(w, r); rerr != nil {
				log.ErrorContext(r.Context(), "render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, info.Message, info.StatusCode)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{
			StatusCode: info.StatusCode,
			Key:        info.Key,
			Message:    info.Message,
			RequestID:  reqID,
			RetryURL:   r.URL.Path,
		})
		if rerr := TemplStatus(info.StatusCode, page).Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "render error page", logger.Error(rerr))
		}
	}
}

// NewJSONErrorHandler answers every error with the JSON envelope.
func NewJSONErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx Context, err error) {
		r := ctx.Request()
		logError(log, r, err, classifyError(err))
		if rerr := JSONError(err).Render(ctx.ResponseWriter(), r); rerr != nil {
			log.ErrorContext(r.Context(), "render json error", logger.Error(rerr))
		}
	}
}
