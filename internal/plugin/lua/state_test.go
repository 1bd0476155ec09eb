package lua

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestNewState(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = 1`); err != nil {
		t.Errorf("DoString() on new state error = %v", err)
	}
	if state.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", state.timeout, DefaultTimeout)
	}
}

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = math.floor(7 / 2)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := state.L.GetGlobal("x"); v != glua.LNumber(3) {
		t.Errorf("x = %v, want 3", v)
	}
}

func TestStateSandbox(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		if v := state.L.GetGlobal(name); v != glua.LNil {
			t.Errorf("global %s = %v, want nil", name, v)
		}
	}

	if err := state.DoString(`os.exit(1)`); err == nil {
		t.Error("expected error calling os.exit")
	}
}

func TestStatePrintRedirected(t *testing.T) {
	var out bytes.Buffer
	state := NewState(WithOutput(&out))
	defer state.Close()

	if err := state.DoString(`print("hello", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := out.String(); got != "hello\t42\n" {
		t.Errorf("print output = %q, want %q", got, "hello\t42\n")
	}
}

func TestStateCallNumber(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`function add(a, b) return a + b end
function text() return "x" end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	add := state.L.GetGlobal("add").(*glua.LFunction)
	got, err := state.CallNumber(add, 2, 3)
	if err != nil {
		t.Fatalf("CallNumber() error = %v", err)
	}
	if got != 5 {
		t.Errorf("CallNumber(add, 2, 3) = %v, want 5", got)
	}

	text := state.L.GetGlobal("text").(*glua.LFunction)
	if _, err := state.CallNumber(text); !errors.Is(err, ErrNotANumber) {
		t.Errorf("CallNumber(text) error = %v, want ErrNotANumber", err)
	}
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after close error = %v, want ErrStateClosed", err)
	}
	if _, err := state.CallNumber(nil); !errors.Is(err, ErrStateClosed) {
		t.Errorf("CallNumber() after close error = %v, want ErrStateClosed", err)
	}
}

func TestStateRuntimeError(t *testing.T) {
	state := NewState()
	defer state.Close()

	err := state.DoString(`error("boom")`)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("DoString() error = %v, want boom", err)
	}
}
