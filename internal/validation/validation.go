// Package validation adapts go-playground/validator to echo with first-error-wins messages.
package validation

import (
	"errors"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TRTLAddressLength is the length of a standard TurtleCoin wallet address.
const TRTLAddressLength = 99

// Error is the first failing field of a validated struct.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the trtladdr rule registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("trtladdr", func(fl validator.FieldLevel) bool {
		return IsTRTLAddress(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate checks i and returns *Error for the first failing field.
// The message comes from the field's msg tag when present.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	return &Error{Field: first.Field(), Message: message(i, first)}
}

func message(i interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(i)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if msg := f.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}
	return "Please enter a valid " + fe.Field() + "."
}

// IsTRTLAddress reports whether s looks like a standard TurtleCoin address.
func IsTRTLAddress(s string) bool {
	return len(s) == TRTLAddressLength && strings.HasPrefix(s, "TRTL")
}

// Clean trims surrounding whitespace and HTML-escapes s.
func Clean(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// Unescape trims surrounding whitespace and reverses HTML escaping.
func Unescape(s string) string {
	return html.UnescapeString(strings.TrimSpace(s))
}
