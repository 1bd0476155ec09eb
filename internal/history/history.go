package history

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const (
	// DefaultCapacity is the number of entries kept when no capacity is set.
	DefaultCapacity = 10

	// DefaultFilename is the export target used when none is given.
	DefaultFilename = "historia.txt"

	// TimeLayout formats the entry timestamp (HH:MM:SS).
	TimeLayout = "15:04:05"
)

// Entry is one recorded calculation.
type Entry struct {
	Time    time.Time
	Summary string
}

// String renders the entry as "HH:MM:SS - summary".
func (e Entry) String() string {
	return e.Time.Format(TimeLayout) + " - " + e.Summary
}

// History is a bounded, append-only log of calculation summaries.
//
// History is not safe for concurrent use.
type History struct {
	entries  []Entry
	capacity int
	now      func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithCapacity sets the maximum number of entries.
// Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// WithClock sets the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{
		capacity: DefaultCapacity,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// OnCalculationPerformed records summary, evicting the oldest entry if the
// log is over capacity.
func (h *History) OnCalculationPerformed(summary string) {
	h.entries = append(h.entries, Entry{
		Time:    h.now(),
		Summary: summary,
	})

	if len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
	}
}

// Entries returns the formatted entries, oldest first.
// Returns ErrNoHistory if nothing has been recorded.
func (h *History) Entries() ([]string, error) {
	if len(h.entries) == 0 {
		return nil, ErrNoHistory
	}

	lines := make([]string, len(h.entries))
	for i, e := range h.entries {
		lines[i] = e.String()
	}
	return lines, nil
}

// Display writes a header followed by every entry, or a notice that the
// history is empty.
func (h *History) Display(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "\n=== CALCULATION HISTORY ==="); err != nil {
		return err
	}

	lines, err := h.Entries()
	if err != nil {
		_, err = fmt.Fprintln(w, "No history")
		return err
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// SaveToFile overwrites filename with one entry per line.
// An empty filename means DefaultFilename.
func (h *History) SaveToFile(filename string) error {
	if filename == "" {
		filename = DefaultFilename
	}

	var sb strings.Builder
	for _, e := range h.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(filename, []byte(sb.String()), 0o644); err != nil {
		return &ExportError{Path: filename, Err: err}
	}
	return nil
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of entries.
func (h *History) Capacity() int {
	return h.capacity
}
