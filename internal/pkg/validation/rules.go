// Package validation wraps go-playground/validator with the rules and
// user-facing messages used by the console's forms.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// FieldErrors maps a form field name to the first message that applies to it.
type FieldErrors map[string]string

// First returns the message of the first field in order that has one.
func (fe FieldErrors) First(order []string) (string, bool) {
	for _, f := range order {
		if msg, ok := fe[f]; ok {
			return msg, true
		}
	}
	return "", false
}

// Validator returns the shared validator instance. Field names reported in
// errors are the `form` tag names, falling back to `json`.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(fmt.Sprintf("register notblank: %v", err))
		}
	})
	return validate
}

// Struct validates s and returns one message per failing field, or nil.
func Struct(s interface{}) FieldErrors {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": err.Error()}
	}

	typ := reflect.TypeOf(s)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = Message(fe, labelOf(typ, fe))
	}
	return out
}

// Message formats a single validation failure for display next to its field.
func Message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "max":
		return label + " must be at most " + fe.Param() + " characters"
	case "email":
		return label + " must be a valid email address"
	case "oneof":
		return label + " must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "datetime":
		return label + " must be a valid date"
	default:
		return label + " is invalid"
	}
}

func labelOf(typ reflect.Type, fe validator.FieldError) string {
	if typ.Kind() == reflect.Struct {
		if f, ok := typ.FieldByName(fe.StructField()); ok {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
		}
	}
	return fe.Field()
}
