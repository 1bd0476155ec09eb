package lua

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/calculator/internal/calculator"
	"github.com/dshills/calculator/internal/operation"
)

const hypScript = `
calc.register{
  symbol = "hyp",
  description = "Hypotenuse",
  fn = function(a, b) return math.sqrt(a * a + b * b) end,
}
calc.register{
  symbol = "inv",
  description = "Reciprocal",
  unary = true,
  fn = function(a)
    if a == 0 then calc.divide_by_zero() end
    return 1 / a
  end,
}
`

func writeScript(t *testing.T, dir, name, code string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestHostLoadString(t *testing.T) {
	host := NewHost()
	defer host.Close()

	ops, err := host.LoadString("hyp", hypScript)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("LoadString() returned %d operations, want 2", len(ops))
	}

	hyp := ops[0]
	if hyp.Symbol() != "hyp" || hyp.Description() != "Hypotenuse" {
		t.Errorf("op = %s/%s, want hyp/Hypotenuse", hyp.Symbol(), hyp.Description())
	}
	if operation.IsUnary(hyp) {
		t.Error("hyp should be binary")
	}
	got, err := hyp.Calculate(3, 4)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if got != 5 {
		t.Errorf("hyp(3, 4) = %v, want 5", got)
	}

	inv := ops[1]
	if !operation.IsUnary(inv) {
		t.Error("inv should be unary")
	}
	if got, _ := inv.Calculate(4, 0); got != 0.25 {
		t.Errorf("inv(4) = %v, want 0.25", got)
	}
}

func TestHostDivideByZero(t *testing.T) {
	host := NewHost()
	defer host.Close()

	ops, err := host.LoadString("inv", hypScript)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	_, err = ops[1].Calculate(0, 0)
	if !errors.Is(err, operation.ErrDivideByZero) {
		t.Errorf("inv(0) error = %v, want ErrDivideByZero", err)
	}

	// A later successful call is not affected by the previous failure.
	if got, err := ops[1].Calculate(2, 0); err != nil || got != 0.5 {
		t.Errorf("inv(2) = %v, %v; want 0.5, nil", got, err)
	}
}

func TestHostRuntimeError(t *testing.T) {
	host := NewHost()
	defer host.Close()

	ops, err := host.LoadString("bad", `
calc.register{ symbol = "bad", fn = function(a, b) error("nope") end }
calc.register{ symbol = "str", fn = function(a, b) return "five" end }
`)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	if ops[0].Description() != "bad" {
		t.Errorf("Description() = %q, want symbol as default", ops[0].Description())
	}
	if _, err := ops[0].Calculate(1, 2); err == nil {
		t.Error("expected runtime error")
	}
	if _, err := ops[1].Calculate(1, 2); !errors.Is(err, ErrNotANumber) {
		t.Errorf("str error = %v, want ErrNotANumber", err)
	}
}

func TestHostDivideByZeroCaught(t *testing.T) {
	host := NewHost()
	defer host.Close()

	ops, err := host.LoadString("caught", `
calc.register{
  symbol = "caught",
  fn = function(a, b)
    if not pcall(calc.divide_by_zero) then
      error("overflow in caught")
    end
    return a
  end,
}
calc.register{
  symbol = "rethrow",
  fn = function(a, b)
    local ok, e = pcall(calc.divide_by_zero)
    error(e)
  end,
}
calc.register{
  symbol = "recover",
  fn = function(a, b)
    pcall(calc.divide_by_zero)
    return a + b
  end,
}
`)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	_, err = ops[0].Calculate(1, 2)
	if err == nil || errors.Is(err, operation.ErrDivideByZero) {
		t.Errorf("caught error = %v, want the later runtime error", err)
	}
	if err != nil && !strings.Contains(err.Error(), "overflow in caught") {
		t.Errorf("caught error = %v, want message from error()", err)
	}

	if _, err := ops[1].Calculate(1, 2); !errors.Is(err, operation.ErrDivideByZero) {
		t.Errorf("rethrow error = %v, want ErrDivideByZero", err)
	}

	if got, err := ops[2].Calculate(1, 2); err != nil || got != 3 {
		t.Errorf("recover = %v, %v; want 3, nil", got, err)
	}
}

func TestHostInvalidDefinition(t *testing.T) {
	tests := map[string]string{
		"no symbol":   `calc.register{ fn = function(a, b) return a end }`,
		"no fn":       `calc.register{ symbol = "x" }`,
		"not a table": `calc.register("x")`,
		"syntax":      `calc.register{`,
		"partial": `calc.register{ symbol = "ok", fn = function(a, b) return a end }
calc.register{ symbol = "x" }`,
	}

	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			host := NewHost()
			defer host.Close()

			_, err := host.LoadString(name, code)
			var pluginErr *PluginError
			if !errors.As(err, &pluginErr) {
				t.Fatalf("LoadString() error = %v, want *PluginError", err)
			}
			if pluginErr.Script != name {
				t.Errorf("PluginError.Script = %q, want %q", pluginErr.Script, name)
			}
			ops, err := host.LoadString("next", "")
			if err != nil || len(ops) != 0 {
				t.Errorf("definitions from a failed script leaked: %d, %v", len(ops), err)
			}
		})
	}
}

func TestHostLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "b_cube.lua", `calc.register{ symbol = "cube", unary = true, fn = function(a) return a ^ 3 end }`)
	writeScript(t, dir, "a_hyp.lua", hypScript)
	writeScript(t, dir, "notes.txt", `not lua`)

	host := NewHost()
	defer host.Close()

	ops, err := host.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	var symbols []string
	for _, op := range ops {
		symbols = append(symbols, op.Symbol())
	}
	want := []string{"hyp", "inv", "cube"}
	if len(symbols) != len(want) {
		t.Fatalf("symbols = %v, want %v", symbols, want)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("symbols[%d] = %q, want %q", i, symbols[i], want[i])
		}
	}
}

func TestHostLoadFileMissing(t *testing.T) {
	host := NewHost()
	defer host.Close()

	path := filepath.Join(t.TempDir(), "missing.lua")
	if _, err := host.LoadFile(path); err == nil {
		t.Error("LoadFile() expected error for missing script")
	}
}

func TestHostClosed(t *testing.T) {
	host := NewHost()
	ops, err := host.LoadString("hyp", hypScript)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	host.Close()

	if _, err := ops[0].Calculate(3, 4); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Calculate() after Close error = %v, want ErrStateClosed", err)
	}
}

func TestHostOperationsDispatchThroughCalculator(t *testing.T) {
	host := NewHost()
	defer host.Close()

	ops, err := host.LoadString("hyp", hypScript)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	c := calculator.New()
	var summaries []string
	c.AddObserver(calculator.ObserverFunc(func(s string) { summaries = append(summaries, s) }))
	for _, op := range ops {
		c.Register(op)
	}

	got, err := c.Perform(5, 12, "hyp")
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	if math.Abs(got-13) > 1e-12 {
		t.Errorf("Perform(5, 12, hyp) = %v, want 13", got)
	}
	if len(summaries) != 1 || summaries[0] != "5 hyp 12 = 13" {
		t.Errorf("summaries = %q, want [5 hyp 12 = 13]", summaries)
	}

	if _, err := c.Perform(0, 0, "inv"); !errors.Is(err, operation.ErrDivideByZero) {
		t.Errorf("Perform(0, 0, inv) error = %v, want ErrDivideByZero", err)
	}
}
