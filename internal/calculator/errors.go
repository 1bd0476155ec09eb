package calculator

import (
	"errors"
	"fmt"
)

// ErrUnknownOperation indicates a symbol with no registered operation.
var ErrUnknownOperation = errors.New("unknown operation")

// UnknownOperationError carries the symbol that could not be dispatched.
type UnknownOperationError struct {
	Symbol string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownOperation, e.Symbol)
}

// Is matches ErrUnknownOperation.
func (e *UnknownOperationError) Is(target error) bool {
	return target == ErrUnknownOperation
}

// CalculationError wraps an error returned by an operation.
type CalculationError struct {
	Symbol string
	A, B   float64
	Err    error
}

func (e *CalculationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s %s: %v", FormatNumber(e.A), e.Symbol, FormatNumber(e.B), e.Err)
}

func (e *CalculationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
