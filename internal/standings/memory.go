package standings

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps runs in process memory. Runs are deep-copied on the way
// in and out.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string][]byte
	at   map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string][]byte),
		at:   make(map[string]int64),
	}
}

func (s *MemoryStore) Init(context.Context) error {
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run *Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to serialize run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = payload
	s.at[run.ID] = run.CreatedAtMs
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (*Run, error) {
	s.mu.RLock()
	payload, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decodeRun(payload)
}

func (s *MemoryStore) ListRuns(ctx context.Context) ([]*Run, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	at := make(map[string]int64, len(s.at))
	for id, ms := range s.at {
		at[id] = ms
	}
	s.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		if at[ids[i]] != at[ids[j]] {
			return at[ids[i]] > at[ids[j]]
		}
		return ids[i] < ids[j]
	})

	runs := make([]*Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.GetRun(ctx, id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func decodeRun(payload []byte) (*Run, error) {
	var run Run
	if err := json.Unmarshal(payload, &run); err != nil {
		return nil, fmt.Errorf("failed to deserialize run: %w", err)
	}
	return &run, nil
}
