package forms

import (
	"strings"

	"github.com/yigit/schooladmin/internal/pkg/validation"
)

// LoginValues are the fields of the login form.
type LoginValues struct {
	Email    string `form:"email" json:"email" validate:"required,email" label:"Email"`
	Password string `form:"password" json:"password" validate:"required" label:"Password"`
}

// Validate returns the login form's field errors, or nil.
func (v LoginValues) Validate() validation.FieldErrors {
	return validation.Struct(v)
}

// SignupValues are the fields of the signup form.
type SignupValues struct {
	FirstName string `form:"firstName" json:"firstName" validate:"notblank" label:"First name"`
	LastName  string `form:"lastName" json:"lastName" validate:"notblank" label:"Last name"`
	Email     string `form:"email" json:"email" validate:"required,email" label:"Email"`
	Password  string `form:"password" json:"password" validate:"required,min=6" label:"Password"`
}

// Validate returns the signup form's field errors, or nil.
func (v SignupValues) Validate() validation.FieldErrors {
	return validation.Struct(v)
}

// FullName joins the trimmed first and last names.
func (v SignupValues) FullName() string {
	return strings.TrimSpace(v.FirstName) + " " + strings.TrimSpace(v.LastName)
}
