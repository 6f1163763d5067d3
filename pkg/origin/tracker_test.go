package origin

import (
	"fmt"
	"testing"
	"time"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr := NewTracker(DefaultTrackerConfig(), nil)
	t.Cleanup(tr.Close)
	return tr
}

func TestPushPopOnce(t *testing.T) {
	tr := newTestTracker(t)

	tr.Push("m1", "/docs/RFP-1")

	url, ok := tr.Pop("m1")
	if !ok || url != "/docs/RFP-1" {
		t.Fatalf("Pop = %q, %v; want %q, true", url, ok, "/docs/RFP-1")
	}

	if _, ok := tr.Pop("m1"); ok {
		t.Error("second Pop should return false")
	}
}

func TestPopOutOfOrder(t *testing.T) {
	tr := newTestTracker(t)

	tr.Push("m1", "/docs/RFP-1")
	tr.Push("m2", "/modals/login")

	url, ok := tr.Pop("m1")
	if !ok || url != "/docs/RFP-1" {
		t.Fatalf("Pop(m1) = %q, %v", url, ok)
	}

	latest, ok := tr.Latest()
	if !ok || latest.URL != "/modals/login" {
		t.Errorf("Latest = %+v, %v; want /modals/login", latest, ok)
	}
	if latest.Position != 0 {
		t.Errorf("Position = %d, want 0 after reindex", latest.Position)
	}
}

func TestLatestReflectsTop(t *testing.T) {
	tr := newTestTracker(t)

	if _, ok := tr.Latest(); ok {
		t.Error("Latest on empty tracker should return false")
	}

	tr.Push("m1", "/a")
	tr.Push("m2", "/b")
	tr.Push("m3", "/c")

	if e, _ := tr.Latest(); e.URL != "/c" {
		t.Errorf("Latest.URL = %q, want /c", e.URL)
	}

	tr.Pop("m3")
	if e, _ := tr.Latest(); e.URL != "/b" {
		t.Errorf("Latest.URL = %q, want /b", e.URL)
	}
}

func TestPushSameHandleMovesToTop(t *testing.T) {
	tr := newTestTracker(t)

	tr.Push("m1", "/a")
	tr.Push("m2", "/b")
	tr.Push("m1", "/a2")

	if tr.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tr.Len())
	}
	if e, _ := tr.Latest(); e.Handle != "m1" || e.URL != "/a2" {
		t.Errorf("Latest = %+v, want m1 at /a2", e)
	}
}

func TestHasAndLen(t *testing.T) {
	tr := newTestTracker(t)

	tr.Push("m1", "/a")
	if !tr.Has("m1") {
		t.Error("Has(m1) = false after push")
	}
	if tr.Has("m2") {
		t.Error("Has(m2) = true, want false")
	}

	tr.Pop("m1")
	if tr.Has("m1") {
		t.Error("Has(m1) = true after pop")
	}
	if tr.Len() != 0 {
		t.Errorf("Len = %d, want 0", tr.Len())
	}
}

func TestSweepExpired(t *testing.T) {
	tr := newTestTracker(t)

	base := time.Now()
	clock := base
	tr.now = func() time.Time { return clock }

	tr.Push("old1", "/a")
	tr.Push("old2", "/b")

	clock = base.Add(2 * time.Hour)
	tr.Push("fresh", "/c")

	tr.sweepExpired()

	if tr.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after sweep", tr.Len())
	}
	if tr.Has("old1") || tr.Has("old2") {
		t.Error("expired entries should be gone")
	}
	e, ok := tr.Latest()
	if !ok || e.Handle != "fresh" || e.Position != 0 {
		t.Errorf("Latest = %+v, %v; want fresh at position 0", e, ok)
	}

	stats := tr.Stats()
	if stats.Expired != 2 {
		t.Errorf("Stats.Expired = %d, want 2", stats.Expired)
	}
}

func TestStatsCounters(t *testing.T) {
	tr := newTestTracker(t)

	tr.Push("m1", "/a")
	tr.Push("m2", "/b")
	tr.Pop("m1")

	s := tr.Stats()
	if s.Pushed != 2 || s.Popped != 1 || s.Depth != 1 {
		t.Errorf("Stats = %+v, want Pushed=2 Popped=1 Depth=1", s)
	}
}

func TestCloseStopsOperations(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig(), nil)

	tr.Push("m1", "/a")
	tr.Close()

	if tr.Len() != 0 {
		t.Errorf("Len = %d, want 0 after close", tr.Len())
	}
	tr.Push("m2", "/b")
	if tr.Len() != 0 {
		t.Error("push after close should be a no-op")
	}
	tr.Close()
}

func TestConcurrentPushPop(t *testing.T) {
	tr := newTestTracker(t)

	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				h := fmt.Sprintf("g%d-m%d", g, i)
				tr.Push(h, "/"+h)
				if url, ok := tr.Pop(h); !ok || url != "/"+h {
					t.Errorf("Pop(%s) = %q, %v", h, url, ok)
				}
			}
		}(g)
	}
	for g := 0; g < 4; g++ {
		<-done
	}

	if tr.Len() != 0 {
		t.Errorf("Len = %d, want 0", tr.Len())
	}
}
