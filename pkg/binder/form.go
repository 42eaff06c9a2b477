package binder

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"
)

// DefaultMaxMemory is the multipart parse memory limit.
const DefaultMaxMemory = 10 << 20

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// Form binds urlencoded and multipart bodies. Fields tagged `form` receive
// values; fields tagged `file` receive *multipart.FileHeader or a slice of them.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		switch mt := mediaType(r); {
		case mt == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
			values = r.PostForm
		case mt == "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File
		default:
			return ErrBinderNotApplicable
		}

		if err := bindValues(v, "form", values, ErrInvalidForm); err != nil {
			return err
		}
		return bindFiles(v, files)
	}
}

func bindFiles(v any, files map[string][]*multipart.FileHeader) error {
	if len(files) == 0 {
		return nil
	}
	rv, err := structValue(v)
	if err != nil {
		return errors.Join(ErrInvalidForm, err)
	}
	rt := rv.Type()
	for i := range rv.NumField() {
		field, sf := rv.Field(i), rt.Field(i)
		name := sf.Tag.Get("file")
		if !field.CanSet() || name == "" || name == "-" {
			continue
		}
		headers := files[name]
		if len(headers) == 0 {
			continue
		}
		for _, fh := range headers {
			fh.Filename = cleanFilename(fh.Filename)
		}
		switch {
		case sf.Type == fileHeaderType:
			field.Set(reflect.ValueOf(headers[0]))
		case sf.Type.Kind() == reflect.Slice && sf.Type.Elem() == fileHeaderType:
			field.Set(reflect.ValueOf(headers))
		default:
			return fmt.Errorf("%w: field %s: unsupported file type %s", ErrInvalidForm, sf.Name, sf.Type)
		}
	}
	return nil
}

// cleanFilename strips directories and null bytes from client file names.
func cleanFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(filepath.Base(name), "\x00", "")
	switch name {
	case "", ".", "..", "/":
		return "unnamed"
	}
	return name
}
