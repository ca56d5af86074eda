package pkg

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/waystar/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks obj against its `validate` struct tags before it is sent to
// the backend. A failure is returned as a domain.AppError with CodeValidation
// whose Fields map is keyed by JSON tag names.
func Validate(obj any) error {
	err := validatorInstance().Struct(obj)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.NewAppError(domain.CodeValidation, "validation error", err)
	}

	return &domain.AppError{
		Code:    domain.CodeValidation,
		Message: "validation error",
		Fields:  fieldErrors(ve, buildJSONTagMap(obj)),
		Err:     err,
	}
}

// ValidateVar checks a single value against tag and reports failures under
// field, e.g. ValidateVar("attractionId", id, "gt=0").
func ValidateVar(field string, value any, tag string) error {
	err := validatorInstance().Var(value, tag)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return domain.NewAppError(domain.CodeValidation, "validation error", err)
	}
	rule := ve[0].Tag()
	if ve[0].Param() != "" {
		rule += "=" + ve[0].Param()
	}
	return &domain.AppError{
		Code:    domain.CodeValidation,
		Message: "validation error",
		Fields:  map[string]string{field: rule},
		Err:     err,
	}
}

// ValidateID rejects non-positive ids.
func ValidateID(field string, id int64) error {
	return ValidateVar(field, id, "gt=0")
}

// ValidateIDs rejects an empty id list or one holding non-positive ids.
func ValidateIDs(field string, ids []int64) error {
	return ValidateVar(field, ids, "required,min=1,dive,gt=0")
}

// fieldErrors converts validator errors into a field → rule map, preferring
// JSON tag names when jsonTags is provided.
func fieldErrors(ve validator.ValidationErrors, jsonTags map[string]string) map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		if tag, ok := jsonTags[fe.StructField()]; ok {
			name = tag
		} else {
			name = strings.ToLower(name)
		}
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[name] = msg
	}
	return out
}

// buildJSONTagMap returns a map from struct field name to its JSON tag name.
// If obj is nil or not a struct (pointer), it returns nil.
func buildJSONTagMap(obj any) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	m := make(map[string]string, t.NumField())
	collectJSONTags(t, m)
	return m
}

// collectJSONTags fills m from t, descending into untagged embedded structs.
func collectJSONTags(t reflect.Type, m map[string]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct {
			collectJSONTags(f.Type, m)
			continue
		}
		if name := parseJSONTagName(tag); name != "" {
			m[f.Name] = name
		}
	}
}

// parseJSONTagName extracts the field name from a JSON struct tag value.
func parseJSONTagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}
