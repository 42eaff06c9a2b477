package handler

import (
	"net/http"
	"net/url"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url  string
	code int
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(rr.url)
	}
	http.Redirect(w, r, rr.url, rr.code)
	return nil
}

// Redirect answers 303 See Other, or a client-side redirect for DataStar.
func Redirect(target string) Response {
	return redirectResponse{url: target, code: http.StatusSeeOther}
}

func RedirectWithCode(target string, code int) Response {
	return redirectResponse{url: target, code: code}
}

// SafeRedirectTarget returns target when it is a same-site relative path,
// fallback otherwise.
func SafeRedirectTarget(target, fallback string) string {
	if target == "" {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" || len(target) < 1 || target[0] != '/' {
		return fallback
	}
	if len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return fallback
	}
	return target
}
