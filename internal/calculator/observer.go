package calculator

// Observer is notified after every successful calculation.
type Observer interface {
	OnCalculationPerformed(summary string)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(summary string)

// OnCalculationPerformed calls f(summary).
func (f ObserverFunc) OnCalculationPerformed(summary string) {
	f(summary)
}
