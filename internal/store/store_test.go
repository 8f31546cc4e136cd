package store

import (
	"testing"
	"time"

	"github.com/alexdb/alexdb/internal/store/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return New(DefaultConfig(), nil)
}

func TestCreateReadDeleteRoundTrip(t *testing.T) {
	s := newTestStore()

	_, err := s.TryCreate(CreateInput{Key: "a", Value: value.Int(1)})
	require.NoError(t, err)

	got, err := s.TryRead("a")
	require.NoError(t, err)
	v, _ := got.Value.AsInt()
	assert.Equal(t, int64(1), v)

	require.NoError(t, s.TryDelete("a"))

	_, err = s.TryRead("a")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateDuplicateKeyConflict(t *testing.T) {
	s := newTestStore()
	_, err := s.TryCreate(CreateInput{Key: "dup", Value: value.Bool(true)})
	require.NoError(t, err)

	_, err = s.TryCreate(CreateInput{Key: "dup", Value: value.Bool(false)})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateInvalidKeyValidation(t *testing.T) {
	s := newTestStore()
	_, err := s.TryCreate(CreateInput{Key: "has spaces", Value: value.Bool(true)})
	assert.Equal(t, KindValidationFailed, KindOf(err))
}

func TestUpdateIsTypeFree(t *testing.T) {
	s := newTestStore()
	_, err := s.TryCreate(CreateInput{Key: "k", Value: value.Int(1)})
	require.NoError(t, err)

	resp, err := s.TryUpdate("k", UpdateInput{Value: value.String("now a string")})
	require.NoError(t, err)
	str, ok := resp.Value.AsString()
	require.True(t, ok)
	assert.Equal(t, "now a string", str)
}

func TestUpdateRecomputesDeleteAt(t *testing.T) {
	s := newTestStore()
	ttl := int64(100)
	_, err := s.TryCreate(CreateInput{Key: "k", Value: value.Int(1), TTL: &ttl})
	require.NoError(t, err)

	shortTTL := int64(1)
	_, err = s.TryUpdate("k", UpdateInput{Value: value.Int(2), TTL: &shortTTL})
	require.NoError(t, err)

	s.mu.RLock()
	id, _ := s.keyIdx.Lookup("k")
	rec := s.records[id]
	s.mu.RUnlock()
	assert.NotNil(t, rec.DeleteAt, "expected delete_at recomputed from new ttl")

	_, err = s.TryUpdate("k", UpdateInput{Value: value.Int(3), TTL: nil})
	require.NoError(t, err)

	s.mu.RLock()
	id, _ = s.keyIdx.Lookup("k")
	rec = s.records[id]
	s.mu.RUnlock()
	assert.Nil(t, rec.DeleteAt, "expected delete_at cleared when ttl omitted")
}

func TestAppendPrependRequireArray(t *testing.T) {
	s := newTestStore()
	_, err := s.TryCreate(CreateInput{Key: "arr", Value: value.Array(value.Int(1), value.Int(2))})
	require.NoError(t, err)

	resp, err := s.TryAppend("arr", value.Array(value.Int(3)))
	require.NoError(t, err)
	elems, _ := resp.Value.AsArray()
	assert.Len(t, elems, 3)

	resp, err = s.TryPrepend("arr", value.Array(value.Int(0)))
	require.NoError(t, err)
	elems, _ = resp.Value.AsArray()
	v, _ := elems[0].AsInt()
	assert.Equal(t, int64(0), v, "expected prepend to land at front")

	_, err = s.TryCreate(CreateInput{Key: "notarr", Value: value.Int(5)})
	require.NoError(t, err)
	_, err = s.TryAppend("notarr", value.Array(value.Int(1)))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestPopBackPopFrontOrderAndExhaustion(t *testing.T) {
	s := newTestStore()
	_, err := s.TryCreate(CreateInput{Key: "arr", Value: value.Array(value.Int(1), value.Int(2), value.Int(3))})
	require.NoError(t, err)

	popped, err := s.TryPopBack("arr", nil)
	require.NoError(t, err)
	require.Len(t, popped, 1, "expected default count 1")
	v, _ := popped[0].AsInt()
	assert.Equal(t, int64(3), v)

	n := 10
	popped, err = s.TryPopFront("arr", &n)
	require.NoError(t, err)
	assert.Len(t, popped, 2, "expected remaining 2 elements popped")

	resp, err := s.TryRead("arr")
	require.NoError(t, err)
	elems, _ := resp.Value.AsArray()
	assert.Empty(t, elems, "expected empty array retained")
}

func TestIncrementDecrementBoundaryScenarios(t *testing.T) {
	tests := []struct {
		name  string
		start int64
		delta *int64
		decr  bool
		want  int64
	}{
		{"increment default", 1, nil, false, 2},
		{"increment_200_max", maxInt64() - 1, ptr(int64(5)), false, maxInt64()},
		{"increment_200_min", 0, ptr(minInt64()), false, 0},
		{"increment_200_min_plus1", 0, ptr(minInt64() + 1), false, maxInt64()},
		{"decrement default", 1, nil, true, 0},
		{"decrement_200_max", minInt64() + 1, ptr(int64(5)), true, minInt64()},
		{"decrement_200_min", 0, ptr(minInt64()), true, 0},
		{"decrement_200_min_plus1", 0, ptr(minInt64() + 1), true, minInt64() + 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore()
			_, err := s.TryCreate(CreateInput{Key: "n", Value: value.Int(tc.start)})
			require.NoError(t, err)

			var resp Response
			if tc.decr {
				resp, err = s.TryDecrement("n", tc.delta)
			} else {
				resp, err = s.TryIncrement("n", tc.delta)
			}
			require.NoError(t, err)
			got, _ := resp.Value.AsInt()
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIncrementRequiresInteger(t *testing.T) {
	s := newTestStore()
	_, err := s.TryCreate(CreateInput{Key: "s", Value: value.String("nope")})
	require.NoError(t, err)
	_, err = s.TryIncrement("s", nil)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestListOrderingDirectionAndLimit(t *testing.T) {
	s := newTestStore()
	for _, k := range []string{"c", "a", "b"} {
		_, err := s.TryCreate(CreateInput{Key: k, Value: value.Bool(true)})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	asc := s.List(ListInput{Direction: Asc, Sort: SortCreatedAt})
	require.Len(t, asc, 3)
	assert.Equal(t, "c", asc[0].Key)
	assert.Equal(t, "b", asc[2].Key)

	byKey := s.List(ListInput{Direction: Asc, Sort: SortKey})
	require.Len(t, byKey, 3)
	assert.Equal(t, "a", byKey[0].Key)
	assert.Equal(t, "b", byKey[1].Key)
	assert.Equal(t, "c", byKey[2].Key)

	limit := 2
	limited := s.List(ListInput{Direction: Asc, Sort: SortKey, Limit: &limit})
	assert.Len(t, limited, 2)

	page := 1
	paged := s.List(ListInput{Direction: Asc, Sort: SortKey, Limit: &limit, Page: &page})
	require.Len(t, paged, 1)
	assert.Equal(t, "c", paged[0].Key)
}

func TestListSkipsExpiredRecords(t *testing.T) {
	s := newTestStore()
	s.now = func() time.Time { return time.Unix(1000, 0) }
	ttl := int64(1)
	_, err := s.TryCreate(CreateInput{Key: "soon", Value: value.Bool(true), TTL: &ttl})
	require.NoError(t, err)
	_, err = s.TryCreate(CreateInput{Key: "forever", Value: value.Bool(true)})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Unix(1002, 0) }
	out := s.List(ListInput{Direction: Asc, Sort: SortCreatedAt})
	require.Len(t, out, 1)
	assert.Equal(t, "forever", out[0].Key)
}

func ptr(v int64) *int64 { return &v }
func maxInt64() int64    { return 1<<63 - 1 }
func minInt64() int64    { return -1 << 63 }
