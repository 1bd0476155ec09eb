package lua

import lua "github.com/yuin/gopher-lua"

// Operation is an operation.Operation implemented by a Lua function.
type Operation struct {
	host        *Host
	symbol      string
	description string
	unary       bool
	fn          *lua.LFunction
}

// Symbol returns the symbol given to calc.register.
func (o *Operation) Symbol() string { return o.symbol }

// Description returns the description given to calc.register.
func (o *Operation) Description() string { return o.description }

// IsUnary reports the unary flag given to calc.register.
func (o *Operation) IsUnary() bool { return o.unary }

// Calculate calls the Lua function with (a, b).
func (o *Operation) Calculate(a, b float64) (float64, error) {
	return o.host.call(o.fn, a, b)
}
