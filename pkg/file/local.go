package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files under a base directory.
type LocalStorage struct {
	baseDir string
	baseURL string
}

func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{baseDir: abs, baseURL: strings.TrimSuffix(baseURL, "/") + "/"}, nil
}

// Dir returns the absolute base directory, for serving with http.FileServer.
func (s *LocalStorage) Dir() string { return s.baseDir }

func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader, dir string) (*File, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := objectKey(dir, fh.Filename)
	if err != nil {
		return nil, err
	}
	mt, err := DetectMIMEType(fh)
	if err != nil {
		return nil, err
	}

	dst := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	n, err := io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return &File{Key: key, Size: n, MIMEType: mt, URL: s.URL(key)}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key))); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return err
	}
	return nil
}

func (s *LocalStorage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(key, "/")
}
