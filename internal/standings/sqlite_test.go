//go:build sqlite

package standings

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "dilemma.db"))
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() { _ = store.Close() })

	older := newTestRun(time.Now().Add(-time.Minute).UnixMilli())
	newer := newTestRun(time.Now().UnixMilli())
	require.NoError(t, store.SaveRun(ctx, older))
	require.NoError(t, store.SaveRun(ctx, newer))

	got, err := store.GetRun(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)

	_, err = store.GetRun(ctx, uuid.New().String())
	assert.True(t, IsNotFound(err))
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "dilemma.db"))
	_, err := store.GetRun(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	assert.Error(t, NewSQLiteStore("").Init(context.Background()))
}

func TestNewStoreSQLite(t *testing.T) {
	store, err := NewStore(Options{Backend: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
}
