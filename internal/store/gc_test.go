package store

import (
	"context"
	"testing"
	"time"

	"github.com/alexdb/alexdb/internal/store/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepExpiredRemovesOnlyExpiredRecords(t *testing.T) {
	s := newTestStore()
	s.now = func() time.Time { return time.Unix(1000, 0) }

	ttl := int64(1)
	_, err := s.TryCreate(CreateInput{Key: "soon", Value: value.Bool(true), TTL: &ttl})
	require.NoError(t, err)
	_, err = s.TryCreate(CreateInput{Key: "forever", Value: value.Bool(true)})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Unix(1002, 0) }
	s.sweepExpired()

	s.mu.RLock()
	_, stillHasSoon := s.keyIdx.Lookup("soon")
	_, stillHasForever := s.keyIdx.Lookup("forever")
	recordCount := len(s.records)
	s.mu.RUnlock()

	assert.False(t, stillHasSoon, "expected expired record swept")
	assert.True(t, stillHasForever, "expected non-expiring record retained")
	assert.Equal(t, 1, recordCount)
}

func TestSweepExpiredNoopWhenNothingExpired(t *testing.T) {
	s := newTestStore()
	s.now = func() time.Time { return time.Unix(1000, 0) }
	ttl := int64(100)
	_, err := s.TryCreate(CreateInput{Key: "k", Value: value.Int(1), TTL: &ttl})
	require.NoError(t, err)

	s.sweepExpired()

	_, err = s.TryRead("k")
	assert.NoError(t, err)
}

func TestRunGCLoopStopsOnContextCancel(t *testing.T) {
	s := newTestStore()
	s.cfg.SleepBetweenGCMs = 5

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.RunGCLoop(ctx)
	assert.NoError(t, err)
}
