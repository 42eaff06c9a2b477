package binder

import "net/http"

// Query binds URL query parameters to fields tagged `query`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}

// Path binds route parameters to fields tagged `path`. The extractor is
// usually chi.URLParam.
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv, err := structValue(v)
		if err != nil {
			return err
		}
		values := make(map[string][]string)
		rt := rv.Type()
		for i := range rt.NumField() {
			name, ok := tagName(rt.Field(i), "path")
			if !ok {
				continue
			}
			if val := extractor(r, name); val != "" {
				values[name] = []string{val}
			}
		}
		return bindValues(v, "path", values, ErrInvalidPath)
	}
}
