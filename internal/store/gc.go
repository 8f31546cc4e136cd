package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunGCLoop runs until ctx is cancelled, periodically sweeping expired
// records. Eviction walks the delete-at index ascending (oldest
// expiry first) and removes every record whose delete_at has passed,
// via the same removeLocked path TryDelete uses, but without bumping
// Writes/Requests — GC is not a client-visible write. Intended to be
// supervised by an errgroup.Group alongside RunPersistenceLoop.
func (s *Store) RunGCLoop(ctx context.Context) error {
	sleep := time.Duration(s.cfg.SleepBetweenGCMs) * time.Millisecond
	ticker := time.NewTicker(sleep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweepExpired()
		}
	}
}

func (s *Store) sweepExpired() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []*Record
	for _, id := range s.deleteAtIdx.All() {
		rec, ok := s.records[id]
		if !ok {
			continue
		}
		if !rec.expired(now) {
			break // index is ascending by delete_at; nothing later has expired either
		}
		expired = append(expired, rec)
	}

	for _, rec := range expired {
		s.removeLocked(rec)
	}

	if len(expired) > 0 {
		s.log.Debug("gc swept expired records", zap.Int("count", len(expired)))
	}
}
