package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector patched by DataStar requests.
func WithTarget(selector string) TemplOption { return datastar.WithSelector(selector) }

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption { return datastar.WithMode(mode) }

type templResponse struct {
	status  int
	partial templ.Component
	full    templ.Component
	options []TemplOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders component as HTML, or as an element patch for DataStar.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, options: opts}
}

// TemplStatus is Templ with an explicit status for plain HTML responses.
func TemplStatus(status int, component templ.Component) Response {
	return templResponse{status: status, partial: component, full: component}
}

// TemplPartial sends partial to DataStar requests and full otherwise.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}
