package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/dshills/calculator/internal/operation"
)

// recorder collects summaries it is notified with.
type recorder struct {
	summaries []string
}

func (r *recorder) OnCalculationPerformed(summary string) {
	r.summaries = append(r.summaries, summary)
}

func TestPerformDefaults(t *testing.T) {
	tests := []struct {
		a, b   float64
		symbol string
		want   float64
	}{
		{2, 3, "+", 5},
		{10, 4, "-", 6},
		{3, 4, "*", 12},
		{9, 0, "^", 1},
		{1, 4, "/", 0.25},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := c.Perform(tt.a, tt.b, tt.symbol)
			if err != nil {
				t.Fatalf("Perform(%v, %v, %q) error = %v", tt.a, tt.b, tt.symbol, err)
			}
			if got != tt.want {
				t.Errorf("Perform(%v, %v, %q) = %v, want %v", tt.a, tt.b, tt.symbol, got, tt.want)
			}
		})
	}
}

func TestPerformDivideByZero(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.AddObserver(rec)

	for _, a := range []float64{0, 1, -42, math.Inf(1)} {
		_, err := c.Perform(a, 0, "/")
		if !errors.Is(err, operation.ErrDivideByZero) {
			t.Errorf("Perform(%v, 0, /) error = %v, want ErrDivideByZero", a, err)
		}

		var calcErr *CalculationError
		if !errors.As(err, &calcErr) {
			t.Fatalf("error %T is not a *CalculationError", err)
		}
		if calcErr.Symbol != "/" {
			t.Errorf("CalculationError.Symbol = %q, want /", calcErr.Symbol)
		}
	}

	if len(rec.summaries) != 0 {
		t.Errorf("observer notified %d times for failed calculations", len(rec.summaries))
	}
}

func TestPerformUnknownOperation(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.AddObserver(rec)

	_, err := c.Perform(1, 2, "zzz")
	if !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("Perform error = %v, want ErrUnknownOperation", err)
	}

	var unknown *UnknownOperationError
	if !errors.As(err, &unknown) {
		t.Fatalf("error %T is not an *UnknownOperationError", err)
	}
	if unknown.Symbol != "zzz" {
		t.Errorf("UnknownOperationError.Symbol = %q, want zzz", unknown.Symbol)
	}
	if len(rec.summaries) != 0 {
		t.Error("observer should not be notified for unknown operations")
	}
}

func TestRegisterReplaces(t *testing.T) {
	c := New()
	before := c.Count()

	c.Register(operation.New("+", "Addition plus one", func(a, b float64) (float64, error) {
		return a + b + 1, nil
	}))

	got, err := c.Perform(2, 3, "+")
	if err != nil {
		t.Fatalf("Perform error = %v", err)
	}
	if got != 6 {
		t.Errorf("Perform(2, 3, +) = %v, want 6 from replacement", got)
	}
	if c.Count() != before {
		t.Errorf("Count() = %d after replacement, want %d", c.Count(), before)
	}

	ops := c.Operations()
	if ops[0].Symbol != "+" || ops[0].Description != "Addition plus one" {
		t.Errorf("Operations()[0] = %+v, want replaced + in first position", ops[0])
	}
}

func TestRegisterNew(t *testing.T) {
	c := New()
	c.Register(operation.SquareRoot{})

	got, err := c.Perform(81, 0, "sqrt")
	if err != nil {
		t.Fatalf("Perform error = %v", err)
	}
	if got != 9 {
		t.Errorf("Perform(81, 0, sqrt) = %v, want 9", got)
	}

	op, ok := c.Lookup("sqrt")
	if !ok {
		t.Fatal("Lookup(sqrt) not found")
	}
	if !operation.IsUnary(op) {
		t.Error("sqrt should be unary")
	}
	if _, ok := c.Lookup("abs"); ok {
		t.Error("Lookup(abs) should not be found")
	}
}

func TestOperationsIncludesDefaults(t *testing.T) {
	c := New()
	found := make(map[string]bool)
	for _, info := range c.Operations() {
		found[info.Symbol] = true
		if info.Description == "" {
			t.Errorf("operation %q has no description", info.Symbol)
		}
	}

	for _, symbol := range []string{"+", "-", "*", "/", "^"} {
		if !found[symbol] {
			t.Errorf("Operations() missing %q", symbol)
		}
	}
}

func TestObserversNotifiedInOrder(t *testing.T) {
	c := New()

	var calls []string
	c.AddObserver(ObserverFunc(func(s string) { calls = append(calls, "first:"+s) }))
	c.AddObserver(ObserverFunc(func(s string) { calls = append(calls, "second:"+s) }))

	if _, err := c.Perform(2, 3, "+"); err != nil {
		t.Fatalf("Perform error = %v", err)
	}

	want := []string{"first:2 + 3 = 5", "second:2 + 3 = 5"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestDuplicateObserverNotifiedTwice(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.AddObserver(rec)
	c.AddObserver(rec)

	if _, err := c.Perform(1.5, 2, "*"); err != nil {
		t.Fatalf("Perform error = %v", err)
	}

	if len(rec.summaries) != 2 {
		t.Fatalf("notified %d times, want 2", len(rec.summaries))
	}
	for _, s := range rec.summaries {
		if s != "1.5 * 2 = 3" {
			t.Errorf("summary = %q, want %q", s, "1.5 * 2 = 3")
		}
	}
}
