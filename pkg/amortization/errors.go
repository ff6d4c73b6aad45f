package amortization

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel every input validation failure matches via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Field names used in InputError.
const (
	FieldPrincipal    = "principal"
	FieldInterestRate = "interestRate"
	FieldTermYears    = "years"
)

// InputError describes a rejected loan parameter.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is makes every InputError match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field string, value interface{}, reason string) *InputError {
	return &InputError{Field: field, Value: fmt.Sprint(value), Reason: reason}
}
