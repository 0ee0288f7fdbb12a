// Package standings persists finished tournament runs so they can be listed
// and inspected after the process exits.
//
// Three backends share the Store interface: an in-process memory store, a
// Redis store with instance-namespaced keys, and a SQLite store that is only
// compiled with the sqlite build tag.
package standings

import (
	"context"
	"errors"
	"fmt"

	"github.com/dyluth/dilemma/pkg/ipd"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// IsNotFound checks if an error is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Entry is one line of a final standings table.
type Entry struct {
	Rank     int      `json:"rank"`     // 1-based, equal scores share a rank
	AgentID  string   `json:"agent_id"` // UUID of the agent
	Name     string   `json:"name"`     // display label
	Strategy ipd.Kind `json:"strategy"`
	Score    int      `json:"score"` // persistent score at the end of the run
}

// Run is the stored record of one finished round-robin tournament.
type Run struct {
	ID          string     `json:"id"`            // UUID
	CreatedAtMs int64      `json:"created_at_ms"` // Unix milliseconds when the run finished
	Turns       int        `json:"turns"`         // turns per match
	Seed        uint64     `json:"seed"`          // seed the population's random sources were derived from
	Payoff      ipd.Matrix `json:"payoff"`
	Matches     int        `json:"matches"` // number of matches played
	Standings   []Entry    `json:"standings"`
}

// Validate checks the fields every backend relies on.
func (r *Run) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid run ID %q: %w", r.ID, err)
	}
	if r.Turns < 1 {
		return fmt.Errorf("turns must be >= 1, got %d", r.Turns)
	}
	if r.CreatedAtMs <= 0 {
		return fmt.Errorf("created_at_ms must be set")
	}
	for i, e := range r.Standings {
		if e.AgentID == "" {
			return fmt.Errorf("standings[%d]: agent_id is required", i)
		}
	}
	return nil
}

// Winner returns the top entry, if any.
func (r *Run) Winner() (Entry, bool) {
	if len(r.Standings) == 0 {
		return Entry{}, false
	}
	return r.Standings[0], true
}

// Store persists tournament runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns every run, newest first.
	ListRuns(ctx context.Context) ([]*Run, error)
}

// CloseIfSupported closes stores that hold a connection.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
