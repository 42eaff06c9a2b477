package file

import (
	"context"
	"fmt"
)

// Config selects the storage driver.
type Config struct {
	Driver   string `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalDir string `env:"STORAGE_LOCAL_DIR" envDefault:"./uploads"`
	LocalURL string `env:"STORAGE_LOCAL_URL" envDefault:"/static/uploads/"`
	MaxSize  int64  `env:"STORAGE_MAX_SIZE" envDefault:"5242880"`
	S3       S3Config
}

// NewFromConfig builds the configured Storage.
func NewFromConfig(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir, cfg.LocalURL)
	case "s3":
		return NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
