// Package store implements the primary key-value store: the keyed
// record map, its four secondary indexes, and the full mutation
// surface (create/read/update/delete plus array and numeric
// variants), maintaining the index and statistics invariants on every
// operation. Concurrency follows the teacher's StringStore/DataStore
// split of a single coarse lock over the map+indexes with
// independently-locked statistics and API-key set.
package store

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexdb/alexdb/internal/store/apikeys"
	"github.com/alexdb/alexdb/internal/store/index"
	"github.com/alexdb/alexdb/internal/store/stats"
	"github.com/alexdb/alexdb/internal/store/value"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the in-memory, single-node key-value database described by
// the spec. The zero value is not usable; construct via New.
type Store struct {
	mu sync.RWMutex

	records map[uuid.UUID]*Record

	createdAtIdx *index.TimeIndex
	updatedAtIdx *index.TimeIndex
	deleteAtIdx  *index.TimeIndex
	keyIdx       *index.KeyIndex

	Stats   *stats.Stats
	APIKeys *apikeys.Set

	cfg Config
	log *zap.Logger

	now func() time.Time

	lastSaveOK atomic.Bool
}

// New constructs an empty Store ready for use. If cfg.DataDir is set,
// callers should follow up with Restore before serving traffic.
func New(cfg Config, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		records:      make(map[uuid.UUID]*Record),
		createdAtIdx: index.NewTimeIndex(),
		updatedAtIdx: index.NewTimeIndex(),
		deleteAtIdx:  index.NewTimeIndex(),
		keyIdx:       index.NewKeyIndex(),
		Stats:        &stats.Stats{},
		APIKeys:      apikeys.New(),
		cfg:          cfg,
		log:          log.Named("store"),
		now:          time.Now,
	}
}

// Config returns the store's configuration.
func (s *Store) Config() Config { return s.cfg }

// ---------------------------------------------------------------------------
// Create / Read / Update / Delete
// ---------------------------------------------------------------------------

// CreateInput is the payload for TryCreate.
type CreateInput struct {
	Key   string
	Value value.Value
	TTL   *int64
}

// TryCreate inserts a new record. Fails with KindValidationFailed on a
// malformed key, or KindConflict if the key already exists.
func (s *Store) TryCreate(in CreateInput) (Response, error) {
	s.Stats.IncRequests()

	if err := ValidateKey(in.Key); err != nil {
		return Response{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.keyIdx.Lookup(in.Key); exists {
		return Response{}, wrapErr(KindConflict, "key already exists", nil)
	}

	id := uuid.New()
	now := s.now()
	rec := &Record{
		ID:        id,
		Key:       in.Key,
		Value:     in.Value,
		CreatedAt: now,
		UpdatedAt: now,
		DeleteAt:  deleteAtFor(now, in.TTL),
	}

	s.records[id] = rec
	s.createdAtIdx.Insert(rec.CreatedAt, id)
	s.updatedAtIdx.Insert(rec.UpdatedAt, id)
	s.keyIdx.Insert(rec.Key, id)
	if rec.DeleteAt != nil {
		s.deleteAtIdx.Insert(*rec.DeleteAt, id)
	}

	s.Stats.IncWrites()

	return rec.ToResponse(), nil
}

// TryRead returns the record stored under key.
func (s *Store) TryRead(key string) (Response, error) {
	s.Stats.IncRequests()

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.lookupLocked(key)
	if err != nil {
		return Response{}, err
	}

	s.Stats.IncReads()
	return rec.ToResponse(), nil
}

// UpdateInput is the payload for TryUpdate.
type UpdateInput struct {
	Value value.Value
	TTL   *int64
}

// TryUpdate replaces a record's value wholesale (update is type-free:
// any Value may replace any Value) and recomputes delete_at from the
// new TTL, clearing it when absent.
func (s *Store) TryUpdate(key string, in UpdateInput) (Response, error) {
	s.Stats.IncRequests()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(key)
	if err != nil {
		return Response{}, err
	}

	s.reindexMutation(rec, func() {
		rec.Value = in.Value
		rec.DeleteAt = deleteAtFor(rec.CreatedAt, in.TTL)
	})

	s.Stats.IncWrites()
	return rec.ToResponse(), nil
}

// TryDelete removes a record and all of its index entries.
func (s *Store) TryDelete(key string) error {
	s.Stats.IncRequests()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(key)
	if err != nil {
		return err
	}

	s.removeLocked(rec)
	s.Stats.IncWrites()
	return nil
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

// Direction orders a List call.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Sort picks which index List walks.
type Sort int

const (
	SortCreatedAt Sort = iota
	SortUpdatedAt
	SortDeleteAt
	SortKey
)

// ListInput is the payload for List.
type ListInput struct {
	Direction Direction
	Sort      Sort
	Limit     *int
	Page      *int
	StartsAt  *time.Time
	EndsAt    *time.Time
}

// List walks the chosen index in the requested direction, skips
// records whose delete_at has passed (GC may lag), applies
// skip/take, and projects to the public response view. Index order is
// the sole source of truth for listing order.
func (s *Store) List(in ListInput) []Response {
	s.Stats.IncRequests()

	s.mu.RLock()
	defer s.mu.RUnlock()

	ascending := in.Direction == Asc
	now := s.now()

	var ids []uuid.UUID
	collect := func(id uuid.UUID) bool {
		ids = append(ids, id)
		return true
	}

	switch in.Sort {
	case SortKey:
		s.keyIdx.Range(ascending, collect)
	case SortUpdatedAt:
		s.updatedAtIdx.Range(ascending, in.StartsAt, in.EndsAt, collect)
	case SortDeleteAt:
		s.deleteAtIdx.Range(ascending, in.StartsAt, in.EndsAt, collect)
	default:
		s.createdAtIdx.Range(ascending, in.StartsAt, in.EndsAt, collect)
	}

	skip := 0
	take := -1
	if in.Limit != nil {
		take = *in.Limit
		if in.Page != nil {
			skip = take * (*in.Page)
		}
	}

	out := make([]Response, 0, len(ids))
	seen := 0
	for _, id := range ids {
		rec, ok := s.records[id]
		if !ok || rec.expired(now) {
			continue
		}
		if seen < skip {
			seen++
			continue
		}
		if take >= 0 && len(out) >= take {
			break
		}
		out = append(out, rec.ToResponse())
		seen++
	}

	s.Stats.IncReads()
	return out
}

// ---------------------------------------------------------------------------
// Array mutations: append / prepend / pop-back / pop-front
// ---------------------------------------------------------------------------

// TryAppend concatenates elements onto an array-valued record. Fails
// with KindConflict if the stored value or the appended value is not
// an Array.
func (s *Store) TryAppend(key string, elems value.Value) (Response, error) {
	return s.mutateArray(key, func(cur []value.Value) ([]value.Value, error) {
		added, ok := elems.AsArray()
		if !ok {
			return nil, wrapErr(KindConflict, "append payload must be an array", nil)
		}
		return append(append([]value.Value{}, cur...), added...), nil
	})
}

// TryPrepend prepends elements, in the given order, onto an
// array-valued record.
func (s *Store) TryPrepend(key string, elems value.Value) (Response, error) {
	return s.mutateArray(key, func(cur []value.Value) ([]value.Value, error) {
		added, ok := elems.AsArray()
		if !ok {
			return nil, wrapErr(KindConflict, "prepend payload must be an array", nil)
		}
		return append(append([]value.Value{}, added...), cur...), nil
	})
}

// TryPopBack removes and returns up to n trailing elements, in LIFO
// order of removal (the last element first). n defaults to 1. If
// n exceeds the array's length, every element is popped and the
// record becomes an empty Array — it is never deleted.
func (s *Store) TryPopBack(key string, n *int) ([]value.Value, error) {
	return s.popFrom(key, n, true)
}

// TryPopFront removes and returns up to n leading elements, in FIFO
// order of removal (the first element first). n defaults to 1.
func (s *Store) TryPopFront(key string, n *int) ([]value.Value, error) {
	return s.popFrom(key, n, false)
}

func (s *Store) popFrom(key string, n *int, back bool) ([]value.Value, error) {
	s.Stats.IncRequests()

	count := 1
	if n != nil {
		count = *n
	}
	if count < 0 {
		return nil, wrapErr(KindValidationFailed, "pop count must be non-negative", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(key)
	if err != nil {
		return nil, err
	}

	cur, ok := rec.Value.AsArray()
	if !ok {
		return nil, wrapErr(KindConflict, "value is not an array", nil)
	}

	if count > len(cur) {
		count = len(cur)
	}

	var popped []value.Value
	var remaining []value.Value
	if back {
		popped = make([]value.Value, count)
		for i := 0; i < count; i++ {
			popped[i] = cur[len(cur)-1-i]
		}
		remaining = append([]value.Value{}, cur[:len(cur)-count]...)
	} else {
		popped = make([]value.Value, count)
		copy(popped, cur[:count])
		remaining = append([]value.Value{}, cur[count:]...)
	}

	s.reindexMutation(rec, func() {
		rec.Value = value.Array(remaining...)
	})

	s.Stats.IncWrites()
	return popped, nil
}

func (s *Store) mutateArray(key string, fn func(cur []value.Value) ([]value.Value, error)) (Response, error) {
	s.Stats.IncRequests()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(key)
	if err != nil {
		return Response{}, err
	}

	cur, ok := rec.Value.AsArray()
	if !ok {
		return Response{}, wrapErr(KindConflict, "value is not an array", nil)
	}

	next, err := fn(cur)
	if err != nil {
		return Response{}, err
	}

	s.reindexMutation(rec, func() {
		rec.Value = value.Array(next...)
	})

	s.Stats.IncWrites()
	return rec.ToResponse(), nil
}

// ---------------------------------------------------------------------------
// Numeric mutations: increment / decrement
// ---------------------------------------------------------------------------

// TryIncrement adds the magnitude of n (default 1) to an
// integer-valued record using saturating arithmetic; see
// absMagnitude for the i64::MIN special case.
func (s *Store) TryIncrement(key string, n *int64) (Response, error) {
	return s.mutateInteger(key, n, false)
}

// TryDecrement subtracts the magnitude of n (default 1) from an
// integer-valued record using saturating arithmetic.
func (s *Store) TryDecrement(key string, n *int64) (Response, error) {
	return s.mutateInteger(key, n, true)
}

func (s *Store) mutateInteger(key string, n *int64, subtract bool) (Response, error) {
	delta := int64(1)
	if n != nil {
		delta = *n
	}

	s.Stats.IncRequests()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookupLocked(key)
	if err != nil {
		return Response{}, err
	}

	cur, ok := rec.Value.AsInt()
	if !ok {
		return Response{}, wrapErr(KindConflict, "value is not an integer", nil)
	}

	mag := absMagnitude(delta)
	var next int64
	if subtract {
		next = satSub(cur, mag)
	} else {
		next = satAdd(cur, mag)
	}

	s.reindexMutation(rec, func() {
		rec.Value = value.Int(next)
	})

	s.Stats.IncWrites()
	return rec.ToResponse(), nil
}

// absMagnitude returns the non-negative magnitude of n. Negating
// math.MinInt64 overflows int64 (its magnitude, 2^63, has no signed
// representation); per the spec's wrap table that overflow is treated
// as a zero operand rather than wrapping back to MinInt64.
func absMagnitude(n int64) int64 {
	if n == math.MinInt64 {
		return 0
	}
	if n < 0 {
		return -n
	}
	return n
}

// satAdd adds a non-negative magnitude to v, saturating at MaxInt64
// on overflow.
func satAdd(v, mag int64) int64 {
	sum := v + mag
	if mag > 0 && sum < v {
		return math.MaxInt64
	}
	return sum
}

// satSub subtracts a non-negative magnitude from v, saturating at
// MinInt64 on overflow.
func satSub(v, mag int64) int64 {
	diff := v - mag
	if mag > 0 && diff > v {
		return math.MinInt64
	}
	return diff
}

// ---------------------------------------------------------------------------
// Internal helpers — caller must hold s.mu (R or W as appropriate)
// ---------------------------------------------------------------------------

func (s *Store) lookupLocked(key string) (*Record, error) {
	id, ok := s.keyIdx.Lookup(key)
	if !ok {
		return nil, ErrNotFound
	}
	rec, ok := s.records[id]
	if !ok {
		// Invariant violation: key index points at a missing record.
		// Self-heal by dropping the stale key entry.
		s.keyIdx.Remove(key)
		return nil, ErrNotFound
	}
	if rec.expired(s.now()) {
		// GC may lag; a record past its delete_at is dead to every
		// caller even before the GC loop has swept it away.
		return nil, ErrNotFound
	}
	return rec, nil
}

// reindexMutation runs mutate (which changes rec.Value and/or
// rec.DeleteAt) and fixes up the updated_at and delete_at indexes to
// match, exactly per §4.1's "index maintenance on each mutation":
// remove the previous entry, insert the new one. created_at and key
// entries are never rewritten after creation.
func (s *Store) reindexMutation(rec *Record, mutate func()) {
	hadDeleteAt := rec.DeleteAt != nil

	mutate()
	rec.UpdatedAt = s.now()

	s.updatedAtIdx.Remove(rec.ID)
	s.updatedAtIdx.Insert(rec.UpdatedAt, rec.ID)

	if hadDeleteAt {
		s.deleteAtIdx.Remove(rec.ID)
	}
	if rec.DeleteAt != nil {
		s.deleteAtIdx.Insert(*rec.DeleteAt, rec.ID)
	}
}

// removeLocked deletes rec from the primary map and every index.
func (s *Store) removeLocked(rec *Record) {
	delete(s.records, rec.ID)
	s.createdAtIdx.Remove(rec.ID)
	s.updatedAtIdx.Remove(rec.ID)
	s.keyIdx.Remove(rec.Key)
	if rec.DeleteAt != nil {
		s.deleteAtIdx.Remove(rec.ID)
	}
}
