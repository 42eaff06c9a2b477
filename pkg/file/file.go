package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// File describes a stored object.
type File struct {
	Key      string
	Size     int64
	MIMEType string
	URL      string
}

// Storage persists uploads. Keys are slash-separated and relative.
type Storage interface {
	Save(ctx context.Context, fh *multipart.FileHeader, dir string) (*File, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// ImageTypes are accepted for thumbnails and author pictures.
var ImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// DetectMIMEType sniffs the first 512 bytes of the upload.
func DetectMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return http.DetectContentType(buf[:n]), nil
}

// Validate checks the upload size and its sniffed MIME type. An empty
// allowed list accepts any type.
func Validate(fh *multipart.FileHeader, maxBytes int64, allowed ...string) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, fh.Size, maxBytes)
	}
	if len(allowed) == 0 {
		return nil
	}
	mt, err := DetectMIMEType(fh)
	if err != nil {
		return err
	}
	if !slices.Contains(allowed, mt) {
		return fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, mt)
	}
	return nil
}

// SanitizeFilename strips directories and NUL bytes.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(path.Base(name), "\x00", "")
	if name == "." || name == ".." || name == "/" || name == "" {
		return "unnamed"
	}
	return name
}

// objectKey builds dir/<uuid><ext> and rejects traversal in dir.
func objectKey(dir, filename string) (string, error) {
	dir = strings.Trim(path.Clean("/"+strings.ReplaceAll(dir, "\\", "/")), "/")
	if strings.Contains(dir, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, dir)
	}
	ext := strings.ToLower(path.Ext(SanitizeFilename(filename)))
	name := uuid.NewString() + ext
	if dir == "" {
		return name, nil
	}
	return dir + "/" + name, nil
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return key, nil
}
