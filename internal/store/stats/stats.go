// Package stats tracks the store's monotonic operation counters
// independently of the primary map's lock, so a read of the counters
// never contends with an in-flight mutation.
package stats

import "sync/atomic"

// Stats holds the four counters from the spec: reads, writes,
// requests and the saved-writes watermark. Zero value is ready to use.
type Stats struct {
	reads       atomic.Uint64
	writes      atomic.Uint64
	requests    atomic.Uint64
	savedWrites atomic.Uint64
}

// Snapshot is the point-in-time, JSON-serializable view of Stats used
// both by the /stats HTTP handler and by the persistence engine.
type Snapshot struct {
	Reads       uint64 `json:"reads"`
	Writes      uint64 `json:"writes"`
	Requests    uint64 `json:"requests"`
	SavedWrites uint64 `json:"saved_writes"`
}

// IncRequests increments the requests counter. Every core entry point
// calls this first, per the spec.
func (s *Stats) IncRequests() { s.requests.Add(1) }

// IncReads increments the reads counter on a successful read or list.
func (s *Stats) IncReads() { s.reads.Add(1) }

// IncWrites increments the writes counter on any mutation.
func (s *Stats) IncWrites() { s.writes.Add(1) }

// CanSave reports whether enough writes have accumulated since the
// last snapshot to justify triggering a new one.
func (s *Stats) CanSave(threshold uint16) bool {
	return s.writes.Load() >= s.savedWrites.Load()+uint64(threshold)
}

// MarkSaved sets the saved-writes watermark to the current writes
// count. Called only by the persistence engine after a successful
// write-out.
func (s *Stats) MarkSaved() {
	s.savedWrites.Store(s.writes.Load())
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Reads:       s.reads.Load(),
		Writes:      s.writes.Load(),
		Requests:    s.requests.Load(),
		SavedWrites: s.savedWrites.Load(),
	}
}

// Restore overwrites the counters from a persisted snapshot. Used only
// during startup restore, before the store is reachable by callers.
func (s *Stats) Restore(snap Snapshot) {
	s.reads.Store(snap.Reads)
	s.writes.Store(snap.Writes)
	s.requests.Store(snap.Requests)
	s.savedWrites.Store(snap.SavedWrites)
}
