package validation

import (
	"sort"

	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

// Error is a failed form validation. It matches apperrors.ErrValidationFailed.
type Error struct {
	Fields FieldErrors
}

// NewError wraps field errors, or returns nil when there are none.
func NewError(fields FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return apperrors.ErrValidationFailed.Error()
	}
	return e.Fields[keys[0]]
}

func (e *Error) Unwrap() error {
	return apperrors.ErrValidationFailed
}
