package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv.Elem(), nil
}

// tagName returns the parameter name for tag. Untagged fields are skipped.
func tagName(sf reflect.StructField, tag string) (string, bool) {
	if !sf.IsExported() {
		return "", false
	}
	name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}

func bindValues(v any, tag string, values map[string][]string, bindErr error) error {
	rv, err := structValue(v)
	if err != nil {
		return errors.Join(bindErr, err)
	}
	rt := rv.Type()
	for i := range rv.NumField() {
		sf := rt.Field(i)
		name, ok := tagName(sf, tag)
		if !ok {
			continue
		}
		vals := values[name]
		if len(vals) == 0 {
			continue
		}
		if err := setValue(rv.Field(i), vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, name, err)
		}
	}
	return nil
}

func setValue(field reflect.Value, vals []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setValue(field.Elem(), vals)
	case reflect.Slice:
		var parts []string
		for _, v := range vals {
			for p := range strings.SplitSeq(v, ",") {
				if p = strings.TrimSpace(p); p != "" {
					parts = append(parts, p)
				}
			}
		}
		slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
		for i, p := range parts {
			if err := setScalar(slice.Index(i), p); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	default:
		return setScalar(field, vals[0])
	}
}

func setScalar(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int %q", s)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint %q", s)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float %q", s)
		}
		field.SetFloat(n)
	case reflect.Bool:
		switch strings.ToLower(s) {
		case "1", "true", "on", "yes":
			field.SetBool(true)
		case "0", "false", "off", "no", "":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool %q", s)
		}
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
