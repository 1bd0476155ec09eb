package operation

import "math"

// Addition computes a + b.
type Addition struct{}

func (Addition) Symbol() string      { return "+" }
func (Addition) Description() string { return "Addition" }

func (Addition) Calculate(a, b float64) (float64, error) {
	return a + b, nil
}

// Subtraction computes a - b.
type Subtraction struct{}

func (Subtraction) Symbol() string      { return "-" }
func (Subtraction) Description() string { return "Subtraction" }

func (Subtraction) Calculate(a, b float64) (float64, error) {
	return a - b, nil
}

// Multiplication computes a * b.
type Multiplication struct{}

func (Multiplication) Symbol() string      { return "*" }
func (Multiplication) Description() string { return "Multiplication" }

func (Multiplication) Calculate(a, b float64) (float64, error) {
	return a * b, nil
}

// Division computes a / b and refuses a zero divisor instead of
// producing an infinity.
type Division struct{}

func (Division) Symbol() string      { return "/" }
func (Division) Description() string { return "Division" }

func (Division) Calculate(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

// Power raises a to the power b. Edge cases follow math.Pow.
type Power struct{}

func (Power) Symbol() string      { return "^" }
func (Power) Description() string { return "Power" }

func (Power) Calculate(a, b float64) (float64, error) {
	return math.Pow(a, b), nil
}

// SquareRoot computes the square root of a. Negative input yields NaN.
type SquareRoot struct{}

func (SquareRoot) Symbol() string      { return "sqrt" }
func (SquareRoot) Description() string { return "Square root" }
func (SquareRoot) IsUnary() bool       { return true }

func (SquareRoot) Calculate(a, _ float64) (float64, error) {
	return math.Sqrt(a), nil
}

// Percentage computes b percent of a.
type Percentage struct{}

func (Percentage) Symbol() string      { return "%" }
func (Percentage) Description() string { return "Percentage of a number" }

func (Percentage) Calculate(a, b float64) (float64, error) {
	return (a * b) / 100, nil
}

// AbsoluteValue computes |a|.
type AbsoluteValue struct{}

func (AbsoluteValue) Symbol() string      { return "abs" }
func (AbsoluteValue) Description() string { return "Absolute value" }
func (AbsoluteValue) IsUnary() bool       { return true }

func (AbsoluteValue) Calculate(a, _ float64) (float64, error) {
	return math.Abs(a), nil
}

// Sine computes sin(a) with a in radians.
type Sine struct{}

func (Sine) Symbol() string      { return "sin" }
func (Sine) Description() string { return "Sine" }
func (Sine) IsUnary() bool       { return true }

func (Sine) Calculate(a, _ float64) (float64, error) {
	return math.Sin(a), nil
}

// Defaults returns the operations every calculator is created with.
func Defaults() []Operation {
	return []Operation{
		Addition{},
		Subtraction{},
		Multiplication{},
		Division{},
		Power{},
	}
}

// Extended returns the operations the console application registers on
// top of the defaults.
func Extended() []Operation {
	return []Operation{
		SquareRoot{},
		Percentage{},
		AbsoluteValue{},
	}
}

// Builtins returns every operation shipped with the package.
func Builtins() []Operation {
	ops := Defaults()
	ops = append(ops, Extended()...)
	return append(ops, Sine{})
}

// ByName returns the built-in operation registered under symbol.
func ByName(symbol string) (Operation, bool) {
	for _, op := range Builtins() {
		if op.Symbol() == symbol {
			return op, true
		}
	}
	return nil, false
}
