package operation

import "errors"

// ErrDivideByZero is returned by Division when the divisor is zero.
var ErrDivideByZero = errors.New("cannot divide by zero")
