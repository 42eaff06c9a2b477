package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

func Required(field, value string) Rule {
	return rule(field, "field is required", "validation.required",
		func() bool { return strings.TrimSpace(value) != "" }, nil)
}

func MaxLen(field, value string, max int) Rule {
	return rule(field, fmt.Sprintf("must be at most %d characters", max), "validation.max_length",
		func() bool { return utf8.RuneCountInString(value) <= max },
		map[string]any{"max": max})
}

// ValidURL accepts empty strings; combine with Required when needed.
func ValidURL(field, value string) Rule {
	return rule(field, "must be a valid http(s) URL", "validation.url", func() bool {
		if value == "" {
			return true
		}
		u, err := url.Parse(value)
		return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	}, nil)
}

// ValidLink is ValidURL that also accepts site-relative paths such as
// "/static/uploads/a.png".
func ValidLink(field, value string) Rule {
	return rule(field, "must be a valid URL or path", "validation.url", func() bool {
		if value == "" {
			return true
		}
		if strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") {
			_, err := url.Parse(value)
			return err == nil
		}
		u, err := url.Parse(value)
		return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	}, nil)
}

func ValidEmail(field, value string) Rule {
	return rule(field, "must be a valid email address", "validation.email", func() bool {
		addr, err := mail.ParseAddress(value)
		return err == nil && addr.Address == value
	}, nil)
}

func ValidUUID(field, value string) Rule {
	return rule(field, "must be a valid UUID", "validation.uuid", func() bool {
		return uuid.Validate(value) == nil
	}, nil)
}

func MinNum[T Numeric](field string, value, min T) Rule {
	return rule(field, fmt.Sprintf("must be at least %v", min), "validation.min",
		func() bool { return value >= min }, map[string]any{"min": min})
}

func MaxNum[T Numeric](field string, value, max T) Rule {
	return rule(field, fmt.Sprintf("must be at most %v", max), "validation.max",
		func() bool { return value <= max }, map[string]any{"max": max})
}

func RequiredSlice[T any](field string, value []T) Rule {
	return rule(field, "at least one item is required", "validation.required",
		func() bool { return len(value) > 0 }, nil)
}

func OneOf[T comparable](field string, value T, allowed ...T) Rule {
	return rule(field, "has an unsupported value", "validation.one_of",
		func() bool { return slices.Contains(allowed, value) }, nil)
}
