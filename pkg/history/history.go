// Package history abstracts browser-style session history: push,
// replace, and back with pop notification. The core only depends on
// the interface; hosts embedding the engine in a browser bridge
// provide their own implementation.
package history

import "sync"

// Location is one history entry.
type Location struct {
	URL   string
	Title string
}

// History is the mutation surface the navigation engine needs.
type History interface {
	// Push appends a new entry and makes it current.
	Push(url, title string)

	// Replace overwrites the current entry.
	Replace(url, title string)

	// Back moves to the previous entry, notifying pop handlers.
	Back()

	// Current returns the active entry.
	Current() Location

	// OnPop registers a handler invoked after Back moves the cursor.
	OnPop(fn func(Location))
}

// Memory is an in-process History backed by a slice. Safe for
// concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries []Location
	pos     int
	popFns  []func(Location)
}

// NewMemory returns an empty in-memory history.
func NewMemory() *Memory {
	return &Memory{pos: -1}
}

func (m *Memory) Push(url, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Forward entries are discarded on a fresh push.
	m.entries = append(m.entries[:m.pos+1], Location{URL: url, Title: title})
	m.pos = len(m.entries) - 1
}

func (m *Memory) Replace(url, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pos < 0 {
		m.entries = append(m.entries, Location{URL: url, Title: title})
		m.pos = 0
		return
	}
	m.entries[m.pos] = Location{URL: url, Title: title}
}

func (m *Memory) Back() {
	m.mu.Lock()
	if m.pos <= 0 {
		m.mu.Unlock()
		return
	}
	m.pos--
	loc := m.entries[m.pos]
	fns := append([]func(Location){}, m.popFns...)
	m.mu.Unlock()

	for _, fn := range fns {
		fn(loc)
	}
}

func (m *Memory) Current() Location {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pos < 0 {
		return Location{}
	}
	return m.entries[m.pos]
}

func (m *Memory) OnPop(fn func(Location)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.popFns = append(m.popFns, fn)
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
