package binder

import "errors"

var (
	// ErrBinderNotApplicable tells handler.Wrap to try the next binder.
	ErrBinderNotApplicable = errors.New("binder not applicable to request")

	ErrInvalidJSON   = errors.New("invalid JSON request body")
	ErrInvalidForm   = errors.New("invalid form data")
	ErrInvalidQuery  = errors.New("invalid query parameters")
	ErrInvalidPath   = errors.New("invalid path parameters")
	ErrBodyTooLarge  = errors.New("request body too large")
	ErrInvalidTarget = errors.New("binding target must be a non-nil pointer to struct")
)
