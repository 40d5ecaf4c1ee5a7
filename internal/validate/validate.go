package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
)

// ValidationError carries per-field messages for a rejected form. It is
// produced before any store call.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+": "+e.Fields[n])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Validator checks admin and public forms and renders messages in one locale.
type Validator struct {
	v   *validator.Validate
	cat catalog
}

// New returns a Validator for locale ("tr" or "en"; anything else falls back to "tr").
func New(locale string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("icon", func(fl validator.FieldLevel) bool {
		return IsIcon(content.Icon(fl.Field().String()))
	})
	return &Validator{v: v, cat: catalogFor(locale)}
}

// IsIcon reports whether i is in the fixed icon set.
func IsIcon(i content.Icon) bool {
	for _, known := range content.Icons {
		if i == known {
			return true
		}
	}
	return false
}

// Struct validates s against its `validate` tags.
func (x *Validator) Struct(s interface{}) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range fes {
		out.add(fe.Field(), x.message(fe))
	}
	return out
}

// SafeNames rejects field names that cannot be stored as document paths.
func (x *Validator) SafeNames(fields content.Fields) error {
	out := &ValidationError{}
	for name := range fields {
		if !safeName(name) {
			out.add(name, x.cat.badName)
		}
	}
	return out.orNil()
}

// FieldNames is SafeNames plus a check that every name is owned by the typed
// view of key.
func (x *Validator) FieldNames(key content.Key, fields content.Fields) error {
	out := &ValidationError{}
	for name := range fields {
		switch {
		case !safeName(name):
			out.add(name, x.cat.badName)
		case !content.KnownField(key, name):
			out.add(name, x.cat.unknown)
		}
	}
	return out.orNil()
}

func safeName(name string) bool {
	return name != "" && !strings.Contains(name, ".") && !strings.HasPrefix(name, "$")
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Message returns the generic failure text shown when the store fails.
func (x *Validator) Message() string { return x.cat.failure }

func (x *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return x.cat.required
	case "email":
		return x.cat.email
	case "url":
		return x.cat.url
	case "icon":
		return x.cat.icon
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf(x.cat.minLen, fe.Param())
		}
		return fmt.Sprintf(x.cat.minVal, fe.Param())
	}
	return x.cat.invalid
}
