// Package operation defines the arithmetic operations understood by the
// calculator.
//
// Every operation implements the same two-argument contract:
//
//	type Operation interface {
//	    Symbol() string
//	    Description() string
//	    Calculate(a, b float64) (float64, error)
//	}
//
// Operations that only need one operand (square root, absolute value,
// sine) ignore b and report themselves through the optional Unary
// interface so that callers can skip asking for a second value.
//
// # Built-ins
//
// Defaults returns the five operations every calculator starts with
// (+ - * / ^). Extended returns the operations the console application
// adds at startup (sqrt % abs). Builtins returns all nine, including sin.
//
// New operations can be added without touching the registry, either by
// declaring a type or by wrapping a function:
//
//	hyp := operation.New("hyp", "Hypotenuse", func(a, b float64) (float64, error) {
//	    return math.Hypot(a, b), nil
//	})
package operation
