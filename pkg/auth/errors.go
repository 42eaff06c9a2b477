package auth

import "errors"

var (
	ErrInvalidState    = errors.New("invalid OAuth state")
	ErrInvalidCode     = errors.New("invalid OAuth code")
	ErrUnverifiedEmail = errors.New("email not verified by provider")
	ErrNoPrimaryEmail  = errors.New("no primary email from provider")
	ErrProfileFetch    = errors.New("failed to fetch provider profile")
)
