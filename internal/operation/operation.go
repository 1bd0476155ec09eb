package operation

// Operation is a named, stateless arithmetic function over two operands.
type Operation interface {
	// Symbol is the key the operation is registered under.
	Symbol() string

	// Description is a human-readable name for listings.
	Description() string

	// Calculate applies the operation. Unary operations ignore b.
	Calculate(a, b float64) (float64, error)
}

// Unary is implemented by operations that only use their first operand.
type Unary interface {
	IsUnary() bool
}

// IsUnary reports whether op only uses its first operand.
func IsUnary(op Operation) bool {
	u, ok := op.(Unary)
	return ok && u.IsUnary()
}

// Func adapts a plain function into an Operation.
type Func struct {
	symbol      string
	description string
	unary       bool
	fn          func(a, b float64) (float64, error)
}

// New creates a binary Operation backed by fn.
func New(symbol, description string, fn func(a, b float64) (float64, error)) *Func {
	return &Func{symbol: symbol, description: description, fn: fn}
}

// NewUnary creates an Operation backed by fn that ignores its second operand.
func NewUnary(symbol, description string, fn func(a float64) (float64, error)) *Func {
	return &Func{
		symbol:      symbol,
		description: description,
		unary:       true,
		fn: func(a, _ float64) (float64, error) {
			return fn(a)
		},
	}
}

// Symbol returns the registration key.
func (f *Func) Symbol() string { return f.symbol }

// Description returns the display name.
func (f *Func) Description() string { return f.description }

// IsUnary reports whether the second operand is ignored.
func (f *Func) IsUnary() bool { return f.unary }

// Calculate invokes the wrapped function.
func (f *Func) Calculate(a, b float64) (float64, error) {
	return f.fn(a, b)
}
