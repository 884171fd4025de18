package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// collector gathers events thread-safely for assertions.
type collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *collector) add(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collector) take() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.events
	c.events = nil

	return out
}

func eventFor(events []Event, path string) (Event, bool) {
	for _, ev := range events {
		if ev.Path == path {
			return ev, true
		}
	}

	return Event{}, false
}

func TestWatcherScanSteps(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "alice.arkprofile")
	tribe := filepath.Join(dir, "42.arktribe")
	ignored := filepath.Join(dir, "notes.txt")

	require.NoError(t, os.WriteFile(profile, []byte("v1"), 0o644))
	require.NoError(t, os.WriteFile(ignored, []byte("x"), 0o644))

	var got collector
	w := New(dir, time.Minute, zaptest.NewLogger(t))
	w.OnEvent(got.add)

	// First scan primes state: the profile shows up as created, the
	// non-save file does not.
	require.NoError(t, w.Scan())
	events := got.take()
	require.Len(t, events, 1)
	require.Equal(t, OpCreated, events[0].Op)
	require.Equal(t, profile, events[0].Path)
	require.NotZero(t, events[0].Fingerprint)

	// No changes, no events.
	require.NoError(t, w.Scan())
	require.Empty(t, got.take())

	// Content change and a new tribe file.
	require.NoError(t, os.WriteFile(profile, []byte("v2 rewritten"), 0o644))
	require.NoError(t, os.WriteFile(tribe, []byte("t1"), 0o644))
	require.NoError(t, w.Scan())

	events = got.take()
	require.Len(t, events, 2)
	mod, ok := eventFor(events, profile)
	require.True(t, ok)
	require.Equal(t, OpModified, mod.Op)
	created, ok := eventFor(events, tribe)
	require.True(t, ok)
	require.Equal(t, OpCreated, created.Op)

	// Removal.
	require.NoError(t, os.Remove(tribe))
	require.NoError(t, w.Scan())

	events = got.take()
	require.Len(t, events, 1)
	require.Equal(t, OpRemoved, events[0].Op)
	require.Equal(t, tribe, events[0].Path)
	require.Zero(t, events[0].Fingerprint)
}

// A rewrite that produces identical bytes must not report a change, even
// though the mtime moved.
func TestWatcherIgnoresTouchWithoutContentChange(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "bob.arkprofile")
	require.NoError(t, os.WriteFile(profile, []byte("same"), 0o644))

	var got collector
	w := New(dir, time.Minute, zaptest.NewLogger(t))
	w.OnEvent(got.add)

	require.NoError(t, w.Scan())
	got.take()

	require.NoError(t, os.WriteFile(profile, []byte("same"), 0o644))
	require.NoError(t, w.Scan())
	require.Empty(t, got.take())
}

// A file whose size and mtime are unchanged is not reread between scans;
// the moment the mtime moves, the content is fingerprinted again.
func TestWatcherSkipsUnchangedStat(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "carol.arkprofile")
	require.NoError(t, os.WriteFile(profile, []byte("aaaa"), 0o644))

	stamp := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(profile, stamp, stamp))

	var got collector
	w := New(dir, time.Minute, zaptest.NewLogger(t))
	w.OnEvent(got.add)

	require.NoError(t, w.Scan())
	got.take()

	// Same size, same mtime: the previous fingerprint is reused, so
	// the rewritten bytes go unnoticed until the mtime changes.
	require.NoError(t, os.WriteFile(profile, []byte("bbbb"), 0o644))
	require.NoError(t, os.Chtimes(profile, stamp, stamp))
	require.NoError(t, w.Scan())
	require.Empty(t, got.take())

	later := stamp.Add(time.Second)
	require.NoError(t, os.Chtimes(profile, later, later))
	require.NoError(t, w.Scan())

	events := got.take()
	require.Len(t, events, 1)
	require.Equal(t, OpModified, events[0].Op)
	require.Equal(t, profile, events[0].Path)
}
