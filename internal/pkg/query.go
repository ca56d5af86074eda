package pkg

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/simp-lee/waystar/internal/domain"
)

// QueryValues encodes a request struct as URL query parameters keyed by JSON
// tag names. Nil pointers are skipped, zero values are skipped when the tag
// carries omitempty, embedded structs are flattened and slices repeat the key.
func QueryValues(obj any) (url.Values, error) {
	values := url.Values{}
	if obj == nil {
		return values, nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return values, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("query values: unsupported type %s", v.Type())
	}
	if err := appendStruct(values, v); err != nil {
		return nil, err
	}
	return values, nil
}

func appendStruct(values url.Values, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		tag := f.Tag.Get("json")

		if f.Anonymous && tag == "" {
			for fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					break
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				if err := appendStruct(values, fv); err != nil {
					return err
				}
			}
			continue
		}

		name := parseJSONTagName(tag)
		if name == "" {
			continue
		}
		omitEmpty := strings.Contains(tag, ",omitempty")

		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		} else if omitEmpty && fv.IsZero() {
			continue
		}

		if fv.Kind() == reflect.Slice {
			for j := 0; j < fv.Len(); j++ {
				s, err := formatScalar(fv.Index(j))
				if err != nil {
					return fmt.Errorf("query values: field %s: %w", f.Name, err)
				}
				values.Add(name, s)
			}
			continue
		}

		s, err := formatScalar(fv)
		if err != nil {
			return fmt.Errorf("query values: field %s: %w", f.Name, err)
		}
		values.Set(name, s)
	}
	return nil
}

func formatScalar(v reflect.Value) (string, error) {
	if t, ok := asTime(v); ok {
		if t.IsZero() {
			return "", nil
		}
		return t.Format(domain.DateTimeLayout), nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported kind %s", v.Kind())
	}
}

// asTime recognizes time.Time and wrappers that embed it as their first field.
func asTime(v reflect.Value) (time.Time, bool) {
	if t, ok := v.Interface().(time.Time); ok {
		return t, true
	}
	if v.Kind() == reflect.Struct && v.NumField() > 0 && v.Type().Field(0).Anonymous {
		if t, ok := v.Field(0).Interface().(time.Time); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ListQuery validates a list filter and encodes it with QueryValues.
func ListQuery(req any) (url.Values, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	query, err := QueryValues(req)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeRequest, domain.ErrRequest.Message, err)
	}
	return query, nil
}
