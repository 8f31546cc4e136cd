package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alexdb/alexdb/internal/store/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStoreWithDataDir(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = &dir
	return New(cfg, nil)
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	s := newTestStoreWithDataDir(t)

	ttl := int64(3600)
	_, err := s.TryCreate(CreateInput{Key: "a", Value: value.Int(42), TTL: &ttl})
	require.NoError(t, err)
	_, err = s.TryCreate(CreateInput{Key: "b", Value: value.Array(value.String("x"), value.Bool(true))})
	require.NoError(t, err)
	id, err := s.APIKeys.Init()
	require.NoError(t, err)
	require.NotNil(t, id)

	want := s.Stats.Snapshot()
	require.NoError(t, s.Save())

	restored := New(s.Config(), nil)
	require.NoError(t, restored.Restore())
	snap := restored.Stats.Snapshot()

	got, err := restored.TryRead("a")
	require.NoError(t, err)
	v, _ := got.Value.AsInt()
	assert.Equal(t, int64(42), v)

	got, err = restored.TryRead("b")
	require.NoError(t, err)
	elems, ok := got.Value.AsArray()
	require.True(t, ok)
	assert.Len(t, elems, 2)

	assert.True(t, restored.APIKeys.Exists(*id), "restored api keys should include the original key")

	assert.Equal(t, want, snap)
}

func TestRestoreMissingFileIsNotAnError(t *testing.T) {
	s := newTestStoreWithDataDir(t)
	require.NoError(t, s.Restore())

	_, err := s.TryRead("nope")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSaveNoopWithoutDataDir(t *testing.T) {
	s := newTestStore()
	assert.NoError(t, s.Save(), "Save should be a no-op when persistence is disabled")
}

func TestRunPersistenceLoopSavesOnShutdown(t *testing.T) {
	s := newTestStoreWithDataDir(t)
	s.cfg.SleepBetweenSavesMs = 5
	_, err := s.TryCreate(CreateInput{Key: "a", Value: value.Int(1)})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Millisecond)
	defer cancel()

	require.NoError(t, s.RunPersistenceLoop(ctx))

	path, ok := s.snapshotPath()
	require.True(t, ok)
	_, err = os.Stat(path)
	assert.NoError(t, err, "expected a final snapshot to be written on shutdown")
}
