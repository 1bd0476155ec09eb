package lua

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/calculator/internal/operation"
)

// Host owns a Lua state and the operations scripts register into it.
type Host struct {
	state *State

	// loading collects definitions made by the script being executed.
	loading []*Operation

	// divideByZero is the error value raised by calc.divide_by_zero.
	divideByZero *lua.LUserData
}

// NewHost creates a host with a fresh sandboxed state and the calc
// module installed.
func NewHost(opts ...StateOption) *Host {
	h := &Host{state: NewState(opts...)}
	h.divideByZero = h.state.L.NewUserData()
	h.divideByZero.Value = operation.ErrDivideByZero
	h.installModule()
	return h
}

func (h *Host) installModule() {
	L := h.state.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"register":       h.luaRegister,
		"divide_by_zero": h.luaDivideByZero,
	})
	L.SetGlobal("calc", mod)
}

// luaRegister implements calc.register{symbol=, description=, unary=, fn=}.
func (h *Host) luaRegister(L *lua.LState) int {
	def := L.CheckTable(1)

	symbol, ok := def.RawGetString("symbol").(lua.LString)
	if !ok || symbol == "" {
		L.ArgError(1, "symbol must be a non-empty string")
		return 0
	}

	fn, ok := def.RawGetString("fn").(*lua.LFunction)
	if !ok {
		L.ArgError(1, fmt.Sprintf("operation %q: fn must be a function", string(symbol)))
		return 0
	}

	description := string(symbol)
	if d, ok := def.RawGetString("description").(lua.LString); ok && d != "" {
		description = string(d)
	}

	h.loading = append(h.loading, &Operation{
		host:        h,
		symbol:      string(symbol),
		description: description,
		unary:       lua.LVAsBool(def.RawGetString("unary")),
		fn:          fn,
	})
	return 0
}

// luaDivideByZero raises the divide-by-zero marker. Scripts may catch it
// with pcall; only an uncaught marker becomes operation.ErrDivideByZero.
func (h *Host) luaDivideByZero(L *lua.LState) int {
	L.Error(h.divideByZero, 1)
	return 0
}

// LoadFile runs a script and returns the operations it registered.
func (h *Host) LoadFile(path string) ([]operation.Operation, error) {
	h.loading = nil
	if err := h.state.DoFile(path); err != nil {
		h.loading = nil
		return nil, &PluginError{Script: path, Err: err}
	}
	return h.commit(), nil
}

// LoadString runs Lua source and returns the operations it registered.
// name identifies the chunk in errors.
func (h *Host) LoadString(name, code string) ([]operation.Operation, error) {
	h.loading = nil
	if err := h.state.DoString(code); err != nil {
		h.loading = nil
		return nil, &PluginError{Script: name, Err: err}
	}
	return h.commit(), nil
}

// LoadDir runs every *.lua file in dir in lexical order.
// Loading stops at the first failing script.
func (h *Host) LoadDir(dir string) ([]operation.Operation, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var result []operation.Operation
	for _, path := range paths {
		ops, err := h.LoadFile(path)
		if err != nil {
			return result, err
		}
		result = append(result, ops...)
	}
	return result, nil
}

func (h *Host) commit() []operation.Operation {
	result := make([]operation.Operation, len(h.loading))
	for i, op := range h.loading {
		result[i] = op
	}
	h.loading = nil
	return result
}

// Close releases the Lua state. Operations from this host fail afterwards.
func (h *Host) Close() error {
	return h.state.Close()
}

// call invokes a registered Lua function, translating an uncaught
// calc.divide_by_zero back into its Go sentinel.
func (h *Host) call(fn *lua.LFunction, a, b float64) (float64, error) {
	result, err := h.state.CallNumber(fn, a, b)
	if err != nil {
		var apiErr *lua.ApiError
		if errors.As(err, &apiErr) && apiErr.Object == h.divideByZero {
			return 0, operation.ErrDivideByZero
		}
		return 0, err
	}
	return result, nil
}
