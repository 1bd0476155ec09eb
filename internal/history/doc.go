// Package history records recent calculations.
//
// A History is a calculator.Observer holding at most Capacity entries
// (10 by default). Each entry is the calculation summary prefixed with the
// local time it was recorded:
//
//	14:02:51 - 2 + 3 = 5
//
// When the log is full, recording a new entry evicts the oldest one, so
// the log always holds the most recent calculations in the order they were
// performed.
//
// The log can be written to any io.Writer with Display or exported to a
// plain text file with SaveToFile, which overwrites the target file.
package history
