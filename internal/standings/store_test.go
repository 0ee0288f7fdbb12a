package standings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/dilemma/pkg/ipd"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRun(createdAtMs int64) *Run {
	return &Run{
		ID:          uuid.New().String(),
		CreatedAtMs: createdAtMs,
		Turns:       200,
		Seed:        42,
		Payoff:      ipd.ClassicMatrix,
		Matches:     1,
		Standings: []Entry{
			{Rank: 1, AgentID: uuid.New().String(), Name: "Defector", Strategy: ipd.KindDefector, Score: 1000},
			{Rank: 2, AgentID: uuid.New().String(), Name: "Kantian", Strategy: ipd.KindKantian, Score: 0},
		},
	}
}

// setupRedisStore creates a store connected to a miniredis instance
func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	store, err := NewRedisStore(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Init(context.Background()))

	return store, mr
}

// Every backend must satisfy the same contract
func TestStoreContract(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"redis": func(t *testing.T) Store {
			store, _ := setupRedisStore(t)
			return store
		},
	}

	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := build(t)
			require.NoError(t, store.Init(ctx))

			older := newTestRun(time.Now().Add(-time.Hour).UnixMilli())
			newer := newTestRun(time.Now().UnixMilli())
			require.NoError(t, store.SaveRun(ctx, older))
			require.NoError(t, store.SaveRun(ctx, newer))

			got, err := store.GetRun(ctx, older.ID)
			require.NoError(t, err)
			assert.Equal(t, older, got)

			runs, err := store.ListRuns(ctx)
			require.NoError(t, err)
			require.Len(t, runs, 2)
			assert.Equal(t, newer.ID, runs[0].ID, "newest first")
			assert.Equal(t, older.ID, runs[1].ID)

			_, err = store.GetRun(ctx, uuid.New().String())
			assert.True(t, IsNotFound(err))

			// Saving again replaces rather than duplicates
			older.Standings[0].Score = 1234
			require.NoError(t, store.SaveRun(ctx, older))
			runs, err = store.ListRuns(ctx)
			require.NoError(t, err)
			assert.Len(t, runs, 2)
			got, err = store.GetRun(ctx, older.ID)
			require.NoError(t, err)
			assert.Equal(t, 1234, got.Standings[0].Score)
		})
	}
}

func TestRun_Validate(t *testing.T) {
	t.Run("valid run", func(t *testing.T) {
		assert.NoError(t, newTestRun(1).Validate())
	})

	t.Run("rejects bad ID", func(t *testing.T) {
		run := newTestRun(1)
		run.ID = "not-a-uuid"
		err := run.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid run ID")
	})

	t.Run("rejects zero turns", func(t *testing.T) {
		run := newTestRun(1)
		run.Turns = 0
		assert.Error(t, run.Validate())
	})

	t.Run("rejects missing timestamp", func(t *testing.T) {
		assert.Error(t, newTestRun(0).Validate())
	})

	t.Run("rejects entries without agent", func(t *testing.T) {
		run := newTestRun(1)
		run.Standings[1].AgentID = ""
		assert.Error(t, run.Validate())
	})

	t.Run("memory store refuses invalid runs", func(t *testing.T) {
		run := newTestRun(1)
		run.Turns = -1
		err := NewMemoryStore().SaveRun(context.Background(), run)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid run")
	})
}

func TestRun_Winner(t *testing.T) {
	run := newTestRun(1)
	winner, ok := run.Winner()
	require.True(t, ok)
	assert.Equal(t, "Defector", winner.Name)

	_, ok = (&Run{}).Winner()
	assert.False(t, ok)
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, CloseIfSupported(store))

	store, err = NewStore(Options{Backend: "redis", RedisAddr: "localhost:6379", Namespace: "x"})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
	assert.NoError(t, CloseIfSupported(store))

	_, err = NewStore(Options{Backend: "redis"})
	assert.Error(t, err)

	_, err = NewStore(Options{Backend: "redis", RedisAddr: "localhost:6379"})
	assert.Error(t, err, "namespace is required")

	_, err = NewStore(Options{Backend: "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}
