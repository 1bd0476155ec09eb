// Package calculator provides the operation registry and dispatcher.
//
// A Calculator maps symbols to operation.Operation values. Perform looks a
// symbol up, computes the result and pushes a summary line of the form
//
//	"<a> <symbol> <b> = <result>"
//
// to every registered Observer, synchronously and in registration order.
// Observers cannot alter or cancel a result.
//
// The calculator does no logging and no recovery: unknown symbols and
// failing operations are returned to the caller as errors.
package calculator
