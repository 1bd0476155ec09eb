package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single Lua call.
const DefaultTimeout = time.Second

// State wraps a sandboxed gopher-lua state.
type State struct {
	L *lua.LState

	timeout time.Duration
	output  io.Writer
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the per-call execution timeout.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithOutput redirects the Lua print function.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		if w != nil {
			s.output = w
		}
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	state := &State{
		timeout: DefaultTimeout,
		output:  io.Discard,
	}

	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})
	openSafeLibraries(L)
	installSandbox(L, state.output)

	state.L = L
	return state
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	if s.closed {
		return ErrStateClosed
	}
	return s.withTimeout(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua string.
func (s *State) DoString(code string) error {
	if s.closed {
		return ErrStateClosed
	}
	return s.withTimeout(func() error {
		return s.L.DoString(code)
	})
}

// CallNumber calls fn with numeric arguments and returns its single
// numeric result.
func (s *State) CallNumber(fn *lua.LFunction, args ...float64) (float64, error) {
	if s.closed {
		return 0, ErrStateClosed
	}

	var ret lua.LValue
	err := s.withTimeout(func() error {
		s.L.Push(fn)
		for _, arg := range args {
			s.L.Push(lua.LNumber(arg))
		}
		if err := s.L.PCall(len(args), 1, nil); err != nil {
			return err
		}
		ret = s.L.Get(-1)
		s.L.Pop(1)
		return nil
	})
	if err != nil {
		return 0, err
	}

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w (got %s)", ErrNotANumber, ret.Type())
	}
	return float64(n), nil
}

// withTimeout runs fn with a deadline installed on the Lua state and
// recovers panics raised by the VM.
func (s *State) withTimeout(fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// Close releases all resources associated with the Lua state.
// After Close is called, all other methods will return ErrStateClosed.
func (s *State) Close() error {
	if s.closed {
		return nil
	}

	s.L.Close()
	s.closed = true
	return nil
}
