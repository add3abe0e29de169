package repository

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrDuplicateKey is matched (errors.Is) by every uniqueness violation reported by a store.
var ErrDuplicateKey = errors.New("duplicate key")

// ValidationError reports a missing or malformed field, an invalid id or a value that cannot be
// converted to the entity's field type.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return ErrDuplicateKey.Error()
	}
	return fmt.Sprintf("%s: %s already exists", ErrDuplicateKey, e.Field)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

func quote(s string) string {
	return strconv.Quote(s)
}
