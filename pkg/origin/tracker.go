package origin

import (
	"log/slog"
	"sync"
	"time"
)

// Entry records one opened modal and the URL to restore when it closes.
type Entry struct {
	// Handle identifies the opened modal instance.
	Handle string

	// URL is the location that was active before the modal opened.
	URL string

	// CreatedAt is when the entry was pushed.
	CreatedAt time.Time

	// Position is the entry's current index in the stack, maintained
	// across out-of-order pops and sweeps.
	Position int
}

// TrackerConfig configures the origin tracker.
type TrackerConfig struct {
	// TTL is how long an unpopped entry survives.
	// Default: 1 hour.
	TTL time.Duration

	// SweepInterval is how often expired entries are purged.
	// Default: 30 minutes.
	SweepInterval time.Duration
}

// DefaultTrackerConfig returns a TrackerConfig with the standard
// lifetimes.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		TTL:           1 * time.Hour,
		SweepInterval: 30 * time.Minute,
	}
}

// Tracker is a stack of modal origins with removal by handle at any
// position. All operations are safe for concurrent use.
type Tracker struct {
	mu sync.Mutex

	// Stack order, bottom first.
	entries []*Entry

	// Handle to stack position.
	index map[string]int

	config TrackerConfig
	logger *slog.Logger
	stats  counters

	// Clock; overrideable for tests.
	now func() time.Time

	done    chan struct{}
	stopped bool
}

// TrackerStats is a point-in-time snapshot of tracker state.
type TrackerStats struct {
	Depth   int
	Swept   int
	Pushed  int
	Popped  int
	Expired int
}

type counters struct {
	pushed  int
	popped  int
	expired int
	sweeps  int
}

// NewTracker creates a tracker and starts its sweep goroutine.
// Call Close to stop it.
func NewTracker(config TrackerConfig, logger *slog.Logger) *Tracker {
	if config.TTL <= 0 {
		config.TTL = DefaultTrackerConfig().TTL
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = DefaultTrackerConfig().SweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tracker{
		index:  make(map[string]int),
		config: config,
		logger: logger.With("component", "origin_tracker"),
		now:    time.Now,
		done:   make(chan struct{}),
	}

	go t.sweepLoop()

	return t
}

// Push records url as the origin for handle. A second push with the
// same handle moves the entry to the top with the new URL.
func (t *Tracker) Push(handle, url string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	if pos, ok := t.index[handle]; ok {
		t.removeAtLocked(pos)
	}

	entry := &Entry{
		Handle:    handle,
		URL:       url,
		CreatedAt: t.now(),
		Position:  len(t.entries),
	}
	t.entries = append(t.entries, entry)
	t.index[handle] = entry.Position
	t.stats.pushed++

	t.logger.Debug("origin pushed",
		"handle", handle,
		"url", url,
		"depth", len(t.entries))
}

// Pop removes the entry for handle wherever it sits in the stack and
// returns its URL. The second Pop for a handle returns false.
func (t *Tracker) Pop(handle string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.index[handle]
	if !ok {
		return "", false
	}

	url := t.entries[pos].URL
	t.removeAtLocked(pos)
	t.stats.popped++

	t.logger.Debug("origin popped",
		"handle", handle,
		"url", url,
		"depth", len(t.entries))
	return url, true
}

// Latest returns the top-of-stack entry without removing it.
func (t *Tracker) Latest() (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return *t.entries[len(t.entries)-1], true
}

// Has reports whether an origin is recorded for handle.
func (t *Tracker) Has(handle string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.index[handle]
	return ok
}

// Len returns the current stack depth.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Stats returns operation counters and the current depth.
func (t *Tracker) Stats() TrackerStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return TrackerStats{
		Depth:   len(t.entries),
		Swept:   t.stats.sweeps,
		Pushed:  t.stats.pushed,
		Popped:  t.stats.popped,
		Expired: t.stats.expired,
	}
}

// Close stops the sweep goroutine and clears the stack.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true
	close(t.done)
	t.entries = nil
	t.index = make(map[string]int)
}

// removeAtLocked removes the entry at pos and reindexes the survivors.
func (t *Tracker) removeAtLocked(pos int) {
	handle := t.entries[pos].Handle
	t.entries = append(t.entries[:pos], t.entries[pos+1:]...)
	delete(t.index, handle)
	for i := pos; i < len(t.entries); i++ {
		t.entries[i].Position = i
		t.index[t.entries[i].Handle] = i
	}
}

// sweepLoop periodically purges expired entries.
func (t *Tracker) sweepLoop() {
	ticker := time.NewTicker(t.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.sweepExpired()
		case <-t.done:
			return
		}
	}
}

// sweepExpired removes entries older than TTL and reindexes the rest.
func (t *Tracker) sweepExpired() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.stats.sweeps++

	cutoff := t.now().Add(-t.config.TTL)
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(t.index, e.Handle)
			t.stats.expired++
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == len(t.entries) {
		return
	}

	removed := len(t.entries) - len(kept)
	t.entries = kept
	for i, e := range t.entries {
		e.Position = i
		t.index[e.Handle] = i
	}

	t.logger.Debug("swept expired origins",
		"count", removed,
		"remaining", len(t.entries))
}
