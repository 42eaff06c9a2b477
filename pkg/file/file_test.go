package file_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/pkg/file"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

func upload(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(1<<20))
	return r.MultipartForm.File["file"][0]
}

func TestValidate(t *testing.T) {
	t.Parallel()

	img := upload(t, "a.png", pngBytes)
	txt := upload(t, "a.png", []byte("just text"))

	assert.NoError(t, file.Validate(img, 1<<20, file.ImageTypes...))
	assert.ErrorIs(t, file.Validate(img, 4, file.ImageTypes...), file.ErrFileTooLarge)
	assert.ErrorIs(t, file.Validate(txt, 1<<20, file.ImageTypes...), file.ErrMIMETypeNotAllowed)
	assert.NoError(t, file.Validate(txt, 0))
	assert.ErrorIs(t, file.Validate(nil, 0), file.ErrNilFileHeader)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"../../etc/passwd": "passwd",
		`C:\Windows\a.txt`: "a.txt",
		"..":               "unnamed",
		"":                 "unnamed",
		"photo\x00.png":    "photo.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, file.SanitizeFilename(in), in)
	}
}

func TestLocalStorage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := file.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	f, err := s.Save(ctx, upload(t, "../Dish.PNG", pngBytes), "recipes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.Key, "recipes/"))
	assert.True(t, strings.HasSuffix(f.Key, ".png"))
	assert.Equal(t, "image/png", f.MIMEType)
	assert.Equal(t, int64(len(pngBytes)), f.Size)
	assert.Equal(t, "/uploads/"+f.Key, f.URL)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Key)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	_, err = s.Save(ctx, upload(t, "a.png", pngBytes), "../escape")
	assert.ErrorIs(t, err, file.ErrInvalidPath)

	require.NoError(t, s.Delete(ctx, f.Key))
	assert.ErrorIs(t, s.Delete(ctx, f.Key), file.ErrFileNotFound)
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	body    []byte
	deleted []string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, in)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	t.Parallel()

	fake := &fakeS3{}
	s, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket:   "media",
		Region:   "ap-northeast-2",
		Endpoint: "http://minio:9000/",
	}, file.WithS3Client(fake))
	require.NoError(t, err)

	f, err := s.Save(context.Background(), upload(t, "x.png", pngBytes), "/authors/")
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "media", *fake.puts[0].Bucket)
	assert.Equal(t, f.Key, *fake.puts[0].Key)
	assert.Equal(t, "image/png", *fake.puts[0].ContentType)
	assert.Equal(t, pngBytes, fake.body)
	assert.Equal(t, "http://minio:9000/media/"+f.Key, f.URL)

	require.NoError(t, s.Delete(context.Background(), f.Key))
	assert.Equal(t, []string{f.Key}, fake.deleted)
}

func TestS3StorageErrors(t *testing.T) {
	t.Parallel()

	_, err := file.NewS3Storage(context.Background(), file.S3Config{})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)

	tests := []struct {
		code string
		want error
	}{
		{"AccessDenied", file.ErrAccessDenied},
		{"SlowDown", file.ErrServiceUnavailable},
		{"NoSuchKey", file.ErrFileNotFound},
		{"NoSuchBucket", file.ErrBucketNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			fake := &fakeS3{err: &smithy.GenericAPIError{Code: tt.code}}
			s, err := file.NewS3Storage(context.Background(), file.S3Config{Bucket: "b", Region: "r"}, file.WithS3Client(fake))
			require.NoError(t, err)
			assert.ErrorIs(t, s.Delete(context.Background(), "k.png"), tt.want)
		})
	}

	fake := &fakeS3{err: errors.New("network")}
	s, err := file.NewS3Storage(context.Background(), file.S3Config{Bucket: "b", Region: "r", BaseURL: "https://cdn.example.com"}, file.WithS3Client(fake))
	require.NoError(t, err)
	assert.Error(t, s.Delete(context.Background(), "k.png"))
	assert.Equal(t, "https://cdn.example.com/k.png", s.URL("k.png"))
}
