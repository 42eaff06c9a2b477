package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

// NewState returns a random URL-safe OAuth state value.
func NewState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// VerifyState compares the stored and returned state in constant time.
func VerifyState(stored, returned string) error {
	if stored == "" || returned == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(returned)) != 1 {
		return ErrInvalidState
	}
	return nil
}
