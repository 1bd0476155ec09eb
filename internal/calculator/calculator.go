package calculator

import "github.com/dshills/calculator/internal/operation"

// Info describes a registered operation for listings.
type Info struct {
	Symbol      string
	Description string
}

// Calculator dispatches calculations to registered operations and
// notifies observers of each result.
//
// A Calculator is not safe for concurrent use.
type Calculator struct {
	ops       map[string]operation.Operation
	order     []string // symbols in first-registration order
	observers []Observer
}

// New creates a calculator with the default operations (+ - * / ^)
// registered and no observers.
func New() *Calculator {
	c := &Calculator{
		ops: make(map[string]operation.Operation),
	}
	for _, op := range operation.Defaults() {
		c.Register(op)
	}
	return c
}

// Register adds op under its symbol, replacing any operation already
// registered there. A replaced symbol keeps its listing position.
func (c *Calculator) Register(op operation.Operation) {
	symbol := op.Symbol()
	if _, exists := c.ops[symbol]; !exists {
		c.order = append(c.order, symbol)
	}
	c.ops[symbol] = op
}

// AddObserver appends obs to the notification list. Adding the same
// observer twice causes it to be notified twice.
func (c *Calculator) AddObserver(obs Observer) {
	c.observers = append(c.observers, obs)
}

// Lookup returns the operation registered under symbol.
func (c *Calculator) Lookup(symbol string) (operation.Operation, bool) {
	op, ok := c.ops[symbol]
	return op, ok
}

// Perform computes a <symbol> b.
//
// Observers are notified only when the operation succeeds.
func (c *Calculator) Perform(a, b float64, symbol string) (float64, error) {
	op, ok := c.ops[symbol]
	if !ok {
		return 0, &UnknownOperationError{Symbol: symbol}
	}

	result, err := op.Calculate(a, b)
	if err != nil {
		return 0, &CalculationError{Symbol: symbol, A: a, B: b, Err: err}
	}

	summary := Summary(a, b, symbol, result)
	for _, obs := range c.observers {
		obs.OnCalculationPerformed(summary)
	}

	return result, nil
}

// Operations lists the registered operations in registration order.
func (c *Calculator) Operations() []Info {
	result := make([]Info, 0, len(c.order))
	for _, symbol := range c.order {
		op := c.ops[symbol]
		result = append(result, Info{
			Symbol:      symbol,
			Description: op.Description(),
		})
	}
	return result
}

// Count returns the number of registered operations.
func (c *Calculator) Count() int {
	return len(c.ops)
}
