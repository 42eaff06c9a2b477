package handler

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ValidationError maps field names to messages.
type ValidationError url.Values

func NewValidationError() ValidationError { return make(ValidationError) }

// Error lists the first message of each field in key order.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(e[k]) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", k, e[k][0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, message string) { url.Values(e).Add(field, message) }
func (e ValidationError) Get(field string) string   { return url.Values(e).Get(field) }
func (e ValidationError) Has(field string) bool     { return len(e[field]) > 0 }
func (e ValidationError) IsEmpty() bool             { return len(e) == 0 }

// Err returns e as an error, or nil when empty.
func (e ValidationError) Err() error {
	if e.IsEmpty() {
		return nil
	}
	return e
}
