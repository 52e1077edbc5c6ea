package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrDuplicateName           = errors.New("a business with this name already exists")
	ErrOwnerAlreadyHasBusiness = errors.New("you already have a business registered")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrDuplicateRequest        = errors.New("duplicate request")
	ErrOrderNumberTaken        = errors.New("order number already taken")
	ErrSlugTaken               = errors.New("slug already taken")
)

// ValidationError carries a client-facing message for a missing or malformed field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
