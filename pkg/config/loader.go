package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option tunes a single Load call.
type Option func(*options)

type options struct {
	files       []string
	prefix      string
	environment map[string]string
}

// WithEnvFiles overrides the dotenv files read before parsing.
// Missing files are skipped.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = files }
}

// WithPrefix requires every variable to carry the given prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvironment parses from the given map instead of the process
// environment. Dotenv files are ignored. Intended for tests.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = vars }
}

// Load parses the environment into v.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{files: []string{".env"}}
	for _, opt := range opts {
		opt(o)
	}

	if o.environment == nil {
		for _, f := range o.files {
			if _, err := os.Stat(f); err != nil {
				continue
			}
			if err := godotenv.Load(f); err != nil {
				return errors.Join(ErrEnvFile, fmt.Errorf("%s: %w", f, err))
			}
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
