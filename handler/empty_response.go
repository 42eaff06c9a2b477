package handler

import "net/http"

type emptyResponse struct{ status int }

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty answers 204 No Content.
func Empty() Response { return emptyResponse{status: http.StatusNoContent} }

func EmptyWithStatus(status int) Response { return emptyResponse{status: status} }

// errorResponse defers to the error handler configured on Wrap.
type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error returns a Response whose rendering fails with err, handing it to the
// route's ErrorHandler.
func Error(err error) Response { return errorResponse{err: err} }
