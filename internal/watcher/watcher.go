// Package watcher reports changes to plugin scripts in watched directories.
//
// Events are collected by fsnotify in the background and handed out by
// Poll, so callers consume them from their own loop without blocking.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrNotDirectory  = errors.New("path is not a directory")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	var names []string
	for _, o := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
	} {
		if op.Has(o.op) {
			names = append(names, o.name)
		}
	}
	if len(names) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(names, "|")
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Removed reports whether the file is gone after the operation.
func (op Op) Removed() bool {
	return op.Has(OpRemove) || op.Has(OpRename)
}

// Event is a coalesced change to one file.
type Event struct {
	// Path is the path of the affected file.
	Path string

	// Op is every operation seen for Path since the last Poll.
	Op Op
}

// Watcher watches directories for changes to files with one extension.
//
// Watcher is not safe for concurrent use.
type Watcher struct {
	fsw    *fsnotify.Watcher
	ext    string
	closed bool
}

// New creates a watcher that reports files ending in ext (e.g. ".lua").
func New(ext string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fsw: fsw, ext: strings.ToLower(ext)}, nil
}

// Add starts watching dir. Subdirectories are not watched.
func (w *Watcher) Add(dir string) error {
	if w.closed {
		return ErrWatcherClosed
	}

	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}

	return w.fsw.Add(dir)
}

// Poll returns the changes received since the previous call without
// blocking. Events for the same file are merged, and results are sorted
// by path. The first watcher error seen is returned alongside the events.
func (w *Watcher) Poll() ([]Event, error) {
	if w.closed {
		return nil, ErrWatcherClosed
	}

	pending := make(map[string]Op)
	var firstErr error

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return collect(pending), ErrWatcherClosed
			}
			if op := convertOp(ev.Op); op != 0 && w.matches(ev.Name) {
				pending[ev.Name] |= op
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return collect(pending), ErrWatcherClosed
			}
			if firstErr == nil {
				firstErr = err
			}
		default:
			return collect(pending), firstErr
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}

func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.ToLower(filepath.Ext(base)) == w.ext
}

func collect(pending map[string]Op) []Event {
	events := make([]Event, 0, len(pending))
	for path, op := range pending {
		events = append(events, Event{Path: path, Op: op})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Path < events[j].Path
	})
	return events
}

// convertOp converts fsnotify.Op to watcher.Op. Chmod is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
