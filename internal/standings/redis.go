package standings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps runs in Redis.
//
// Each run is a hash at dilemma:{namespace}:run:{id}; a ZSET at
// dilemma:{namespace}:runs indexes run IDs by creation time. Saving a run
// publishes its JSON on dilemma:{namespace}:run_events.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisStore creates a store for the given namespace.
// Returns an error if namespace is empty.
func NewRedisStore(opts *redis.Options, namespace string) (*RedisStore, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &RedisStore{
		rdb:       redis.NewClient(opts),
		namespace: namespace,
	}, nil
}

// Init verifies Redis connectivity.
func (s *RedisStore) Init(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// SaveRun writes the run hash and index entry in one transaction, then
// publishes the run. Saving the same run twice is safe.
func (s *RedisStore) SaveRun(ctx context.Context, run *Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}

	hash, err := runToHash(run)
	if err != nil {
		return fmt.Errorf("failed to serialize run: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, RunKey(s.namespace, run.ID), hash)
		pipe.ZAdd(ctx, RunIndexKey(s.namespace), redis.Z{Score: float64(run.CreatedAtMs), Member: run.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write run to Redis: %w", err)
	}

	runJSON, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run for event: %w", err)
	}
	if err := s.rdb.Publish(ctx, RunEventsChannel(s.namespace), runJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish run event: %w", err)
	}

	return nil
}

// GetRun reads one run. Returns ErrNotFound if it does not exist.
func (s *RedisStore) GetRun(ctx context.Context, id string) (*Run, error) {
	hashData, err := s.rdb.HGetAll(ctx, RunKey(s.namespace, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read run from Redis: %w", err)
	}

	// HGetAll returns an empty map for missing keys
	if len(hashData) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	run, err := hashToRun(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns every indexed run, newest first.
func (s *RedisStore) ListRuns(ctx context.Context) ([]*Run, error) {
	ids, err := s.rdb.ZRevRange(ctx, RunIndexKey(s.namespace), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read run index: %w", err)
	}

	runs := make([]*Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.GetRun(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				// Index entry without a hash, skip it
				continue
			}
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// SubscribeRuns returns a subscription to run events. Callers must close it.
func (s *RedisStore) SubscribeRuns(ctx context.Context) *redis.PubSub {
	return s.rdb.Subscribe(ctx, RunEventsChannel(s.namespace))
}

// runToHash flattens a run into Redis hash fields. Nested values are JSON.
func runToHash(run *Run) (map[string]interface{}, error) {
	payoff, err := json.Marshal(run.Payoff)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payoff: %w", err)
	}
	entries, err := json.Marshal(run.Standings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal standings: %w", err)
	}

	return map[string]interface{}{
		"id":            run.ID,
		"created_at_ms": run.CreatedAtMs,
		"turns":         run.Turns,
		"seed":          strconv.FormatUint(run.Seed, 10),
		"payoff":        string(payoff),
		"matches":       run.Matches,
		"standings":     string(entries),
	}, nil
}

// hashToRun is the inverse of runToHash.
func hashToRun(hash map[string]string) (*Run, error) {
	run := &Run{ID: hash["id"]}

	var err error
	if run.CreatedAtMs, err = strconv.ParseInt(hash["created_at_ms"], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid created_at_ms: %w", err)
	}
	if run.Turns, err = strconv.Atoi(hash["turns"]); err != nil {
		return nil, fmt.Errorf("invalid turns: %w", err)
	}
	if run.Seed, err = strconv.ParseUint(hash["seed"], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	if run.Matches, err = strconv.Atoi(hash["matches"]); err != nil {
		return nil, fmt.Errorf("invalid matches: %w", err)
	}
	if err := json.Unmarshal([]byte(hash["payoff"]), &run.Payoff); err != nil {
		return nil, fmt.Errorf("invalid payoff: %w", err)
	}
	if err := json.Unmarshal([]byte(hash["standings"]), &run.Standings); err != nil {
		return nil, fmt.Errorf("invalid standings: %w", err)
	}
	return run, nil
}
