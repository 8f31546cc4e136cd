package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/alexdb/alexdb/internal/store/index"
	"github.com/alexdb/alexdb/internal/store/stats"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// snapshotFileName is the on-disk name of the persisted database
// within Config.DataDir.
const snapshotFileName = "data.db"

// snapshot is the wire format of the persisted database. Indexes are
// intentionally absent: they are rebuilt from Records on restore
// rather than trusted from disk.
type snapshot struct {
	Records []Record       `json:"records"`
	APIKeys []uuid.UUID    `json:"api_keys"`
	Stats   stats.Snapshot `json:"stats"`
}

func (s *Store) snapshotPath() (string, bool) {
	if s.cfg.DataDir == nil {
		return "", false
	}
	return filepath.Join(*s.cfg.DataDir, snapshotFileName), true
}

// Restore loads the snapshot file if Config.DataDir is set and the
// file exists, replacing the store's in-memory state wholesale and
// rebuilding every index from the decoded records. A missing file is
// not an error — it means an empty database. A file that fails to
// decode is surfaced as KindIoFailed.
func (s *Store) Restore() error {
	path, enabled := s.snapshotPath()
	if !enabled {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return wrapErr(KindIoFailed, "read snapshot", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return wrapErr(KindIoFailed, "decode snapshot", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[uuid.UUID]*Record, len(snap.Records))
	s.createdAtIdx = index.NewTimeIndex()
	s.updatedAtIdx = index.NewTimeIndex()
	s.deleteAtIdx = index.NewTimeIndex()
	s.keyIdx = index.NewKeyIndex()

	for i := range snap.Records {
		rec := snap.Records[i]
		s.records[rec.ID] = &rec
		s.createdAtIdx.Insert(rec.CreatedAt, rec.ID)
		s.updatedAtIdx.Insert(rec.UpdatedAt, rec.ID)
		s.keyIdx.Insert(rec.Key, rec.ID)
		if rec.DeleteAt != nil {
			s.deleteAtIdx.Insert(*rec.DeleteAt, rec.ID)
		}
	}

	s.APIKeys.Restore(snap.APIKeys)
	s.Stats.Restore(snap.Stats)

	s.log.Info("restored snapshot", zap.String("path", path), zap.Int("records", len(snap.Records)))
	return nil
}

// Save writes the current state to the snapshot file atomically. A
// brief read lock copies the records; API keys and stats are then read
// through their own lock and atomic counters. JSON encoding and
// the actual write happen off-lock so persistence never blocks
// in-flight operations for longer than the copy takes.
func (s *Store) Save() error {
	path, enabled := s.snapshotPath()
	if !enabled {
		return nil
	}

	s.mu.RLock()
	records := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, *rec)
	}
	s.mu.RUnlock()

	snap := snapshot{
		Records: records,
		APIKeys: s.APIKeys.List(),
		Stats:   s.Stats.Snapshot(),
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return wrapErr(KindIoFailed, "encode snapshot", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".data.db.tmp-*")
	if err != nil {
		return wrapErr(KindIoFailed, "create temp snapshot", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return wrapErr(KindIoFailed, "write temp snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		return wrapErr(KindIoFailed, "close temp snapshot", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return wrapErr(KindIoFailed, "publish snapshot", err)
	}

	s.Stats.MarkSaved()
	return nil
}

// RunPersistenceLoop runs until ctx is cancelled, saving on whichever
// trigger fires first: the write-count threshold (Stats.CanSave) or
// the maximum elapsed time since the last snapshot. Intended to be
// supervised by an errgroup.Group alongside RunGCLoop.
func (s *Store) RunPersistenceLoop(ctx context.Context) error {
	sleep := time.Duration(s.cfg.SleepBetweenSavesMs) * time.Millisecond
	maxAge := time.Duration(s.cfg.SaveTriggeredAfterMs) * time.Millisecond
	lastSave := time.Now()

	ticker := time.NewTicker(sleep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.Save(); err != nil {
				s.log.Warn("final snapshot on shutdown failed", zap.Error(err))
			}
			return nil
		case <-ticker.C:
			due := s.Stats.CanSave(s.cfg.SaveTriggeredByThreshold) || time.Since(lastSave) >= maxAge
			if !due {
				continue
			}
			if err := s.Save(); err != nil {
				s.log.Error("snapshot failed", zap.Error(err))
				continue
			}
			lastSave = time.Now()
			s.lastSaveOK.Store(true)
		}
	}
}

// LastSaveOK reports whether the persistence loop has completed at
// least one successful snapshot since startup — used by the /readyz
// HTTP endpoint.
func (s *Store) LastSaveOK() bool {
	return s.lastSaveOK.Load()
}
