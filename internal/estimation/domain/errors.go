package domain

import (
	"errors"
	"fmt"
)

// Kind identifies which precondition an estimation failed on.
type Kind string

const (
	KindInvalidInput        Kind = "INVALID_INPUT"
	KindUnknownCurrency     Kind = "UNKNOWN_CURRENCY"
	KindDegenerateWorkforce Kind = "DEGENERATE_WORKFORCE"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnknownCurrency     = errors.New("unknown currency")
	ErrDegenerateWorkforce = errors.New("cannot compute duration")
)

// EstimationError is returned by every engine operation that fails.
type EstimationError struct {
	Kind    Kind   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *EstimationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is match the sentinel for the error's kind.
func (e *EstimationError) Unwrap() error {
	switch e.Kind {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindUnknownCurrency:
		return ErrUnknownCurrency
	case KindDegenerateWorkforce:
		return ErrDegenerateWorkforce
	default:
		return nil
	}
}

func NewInvalidInputError(field, format string, args ...interface{}) *EstimationError {
	return &EstimationError{
		Kind:    KindInvalidInput,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewUnknownCurrencyError(code string) *EstimationError {
	return &EstimationError{
		Kind:    KindUnknownCurrency,
		Field:   "currency",
		Message: fmt.Sprintf("unknown currency %q", code),
	}
}

func NewDegenerateWorkforceError(skilled, unskilled int64) *EstimationError {
	return &EstimationError{
		Kind:    KindDegenerateWorkforce,
		Message: fmt.Sprintf("cannot compute duration: daily team cost is zero (skilled=%d, unskilled=%d)", skilled, unskilled),
	}
}
