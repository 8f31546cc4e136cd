// Package index implements the store's secondary ordering indexes: a
// time-ordered index (used for created_at, updated_at and delete_at)
// and a string-ordered index (used for key). Both are hand-rolled
// sorted slices with an id->position map for O(1) removal, the same
// shape as the teacher's DataStore.indexInsert/indexRemoveAt — grown
// here to carry a composite (timestamp, id) ordering key so that two
// records written in the same instant never collide.
package index

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// entry is one (timestamp, id) pair in a TimeIndex.
type entry struct {
	at time.Time
	id uuid.UUID
}

func less(a, b entry) bool {
	if a.at.Equal(b.at) {
		return a.id.String() < b.id.String()
	}
	return a.at.Before(b.at)
}

// TimeIndex is an ascending ordered map from (timestamp, id) to
// nothing more than membership; the composite key guarantees
// collision-free insertion for same-millisecond writes.
type TimeIndex struct {
	entries []entry
	pos     map[uuid.UUID]int
}

// NewTimeIndex returns an empty TimeIndex.
func NewTimeIndex() *TimeIndex {
	return &TimeIndex{pos: make(map[uuid.UUID]int)}
}

// Insert adds (at, id) to the index. A no-op if id is already indexed
// at a different timestamp; callers must Remove before re-Insert when
// the timestamp changes.
func (idx *TimeIndex) Insert(at time.Time, id uuid.UUID) {
	if _, exists := idx.pos[id]; exists {
		return
	}
	e := entry{at: at, id: id}
	i := sort.Search(len(idx.entries), func(j int) bool { return !less(idx.entries[j], e) })
	idx.entries = append(idx.entries, entry{})
	copy(idx.entries[i+1:], idx.entries[i:])
	idx.entries[i] = e
	for k := i; k < len(idx.entries); k++ {
		idx.pos[idx.entries[k].id] = k
	}
}

// Remove deletes id from the index, regardless of its timestamp. A
// no-op if id is not present.
func (idx *TimeIndex) Remove(id uuid.UUID) {
	i, ok := idx.pos[id]
	if !ok {
		return
	}
	last := len(idx.entries) - 1
	copy(idx.entries[i:], idx.entries[i+1:])
	idx.entries = idx.entries[:last]
	delete(idx.pos, id)
	for k := i; k < len(idx.entries); k++ {
		idx.pos[idx.entries[k].id] = k
	}
}

// Has reports whether id currently has an entry in the index.
func (idx *TimeIndex) Has(id uuid.UUID) bool {
	_, ok := idx.pos[id]
	return ok
}

// Len reports the number of entries.
func (idx *TimeIndex) Len() int { return len(idx.entries) }

// Range walks the index in the given direction, within the half-open
// [from, to) bound when non-nil, calling visit(id) for each entry
// until visit returns false or the bound/entries are exhausted.
func (idx *TimeIndex) Range(ascending bool, from, to *time.Time, visit func(id uuid.UUID) bool) {
	n := len(idx.entries)
	inBounds := func(at time.Time) bool {
		if from != nil && at.Before(*from) {
			return false
		}
		if to != nil && !at.Before(*to) {
			return false
		}
		return true
	}
	if ascending {
		for i := 0; i < n; i++ {
			if !inBounds(idx.entries[i].at) {
				continue
			}
			if !visit(idx.entries[i].id) {
				return
			}
		}
		return
	}
	for i := n - 1; i >= 0; i-- {
		if !inBounds(idx.entries[i].at) {
			continue
		}
		if !visit(idx.entries[i].id) {
			return
		}
	}
}

// All returns every indexed id in ascending timestamp order; used by
// the GC loop, which always walks delete_at ascending from the
// smallest.
func (idx *TimeIndex) All() []uuid.UUID {
	out := make([]uuid.UUID, len(idx.entries))
	for i, e := range idx.entries {
		out[i] = e.id
	}
	return out
}

// keyEntry is one (key, id) pair in a KeyIndex.
type keyEntry struct {
	key string
	id  uuid.UUID
}

// KeyIndex is an ascending ordered map from the record's string key to
// its id. Keys are unique by construction (TryCreate rejects
// duplicates), so no composite ordering key is needed here.
type KeyIndex struct {
	entries []keyEntry
	pos     map[string]int
	byID    map[uuid.UUID]string
}

// NewKeyIndex returns an empty KeyIndex.
func NewKeyIndex() *KeyIndex {
	return &KeyIndex{pos: make(map[string]int), byID: make(map[uuid.UUID]string)}
}

// Insert adds (key, id). A no-op if key is already indexed.
func (idx *KeyIndex) Insert(key string, id uuid.UUID) {
	if _, exists := idx.pos[key]; exists {
		return
	}
	i := sort.Search(len(idx.entries), func(j int) bool { return idx.entries[j].key >= key })
	idx.entries = append(idx.entries, keyEntry{})
	copy(idx.entries[i+1:], idx.entries[i:])
	idx.entries[i] = keyEntry{key: key, id: id}
	for k := i; k < len(idx.entries); k++ {
		idx.pos[idx.entries[k].key] = k
	}
	idx.byID[id] = key
}

// Remove deletes key from the index.
func (idx *KeyIndex) Remove(key string) {
	i, ok := idx.pos[key]
	if !ok {
		return
	}
	id := idx.entries[i].id
	last := len(idx.entries) - 1
	copy(idx.entries[i:], idx.entries[i+1:])
	idx.entries = idx.entries[:last]
	delete(idx.pos, key)
	delete(idx.byID, id)
	for k := i; k < len(idx.entries); k++ {
		idx.pos[idx.entries[k].key] = k
	}
}

// Lookup returns the id stored for key, if any.
func (idx *KeyIndex) Lookup(key string) (uuid.UUID, bool) {
	i, ok := idx.pos[key]
	if !ok {
		return uuid.UUID{}, false
	}
	return idx.entries[i].id, true
}

// KeyOf returns the key a given id is indexed under, if any.
func (idx *KeyIndex) KeyOf(id uuid.UUID) (string, bool) {
	k, ok := idx.byID[id]
	return k, ok
}

// Len reports the number of entries.
func (idx *KeyIndex) Len() int { return len(idx.entries) }

// Range walks the index in the given direction, calling visit(id) for
// each entry until visit returns false.
func (idx *KeyIndex) Range(ascending bool, visit func(id uuid.UUID) bool) {
	n := len(idx.entries)
	if ascending {
		for i := 0; i < n; i++ {
			if !visit(idx.entries[i].id) {
				return
			}
		}
		return
	}
	for i := n - 1; i >= 0; i-- {
		if !visit(idx.entries[i].id) {
			return
		}
	}
}
