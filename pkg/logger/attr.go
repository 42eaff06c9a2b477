package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the signed-in user under "user_id".
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func RecipeID(id string) slog.Attr { return slog.String("recipe_id", id) }

func AuthorID(id string) slog.Attr { return slog.String("author_id", id) }

func Locale(l string) slog.Attr { return slog.String("locale", l) }

func Component(name string) slog.Attr { return slog.String("component", name) }

func Event(name string) slog.Attr { return slog.String("event", name) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }
