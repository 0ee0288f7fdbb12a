// Package tournament drives round-robin Iterated Prisoner's Dilemma
// tournaments: it schedules every pair of a population, plays each pairing
// once and reports the final standings.
package tournament

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/dyluth/dilemma/internal/standings"
	"github.com/dyluth/dilemma/pkg/ipd"
	"github.com/google/uuid"
)

// Options configures a tournament.
type Options struct {
	Turns       int            // turns per match, must be >= 1
	Payoff      ipd.PayoffFunc // nil uses ipd.DefaultPayoff
	Concurrency int            // max matches in flight; <= 1 plays strictly in schedule order
	RunID       string         // empty generates a UUID
	Logger      *log.Logger    // nil discards all log output
	Metrics     Metrics        // nil records nothing

	// Order optionally reorders the schedule before it is played. It must
	// return a permutation of its input.
	Order func(pairs []ipd.Pair) []ipd.Pair
}

// Result is the outcome of one tournament.
type Result struct {
	RunID      string
	Turns      int
	StartedAt  time.Time
	FinishedAt time.Time
	Matches    []ipd.MatchResult // in the order the schedule was played
	Standings  []standings.Entry // best first
}

// Engine runs tournaments. It owns no agents; the population passed to Run
// carries all persistent state.
type Engine struct {
	opts    Options
	runID   string
	logger  *log.Logger
	metrics Metrics
}

// NewEngine creates an engine. Options are validated when Run is called.
func NewEngine(opts Options) *Engine {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoOpMetrics{}
	}

	if opts.Payoff == nil {
		opts.Payoff = ipd.DefaultPayoff
	}

	return &Engine{
		opts:    opts,
		runID:   runID,
		logger:  logger,
		metrics: metrics,
	}
}

// RunID returns the identifier this engine stamps on its results.
func (e *Engine) RunID() string {
	return e.runID
}

// Run plays every pair of the population exactly once.
//
// Scores accumulate on the agents across every match they play. The context
// is checked between matches only; a match that has started always runs its
// full turn count.
func (e *Engine) Run(ctx context.Context, pop *ipd.Population) (*Result, error) {
	if e.opts.Turns < 1 {
		return nil, fmt.Errorf("%w: turn count must be >= 1, got %d", ipd.ErrInvalidMatchConfiguration, e.opts.Turns)
	}
	if pop == nil {
		return nil, fmt.Errorf("population is required")
	}

	pairs := ipd.AllPairs(pop)
	if e.opts.Order != nil {
		ordered := e.opts.Order(pairs)
		if len(ordered) != len(pairs) {
			return nil, fmt.Errorf("pair order returned %d pairs, expected %d", len(ordered), len(pairs))
		}
		pairs = ordered
	}

	started := time.Now()
	e.logger.Printf("[Tournament] Starting run %s: %d agents, %d matches, %d turns each", e.runID, pop.Len(), len(pairs), e.opts.Turns)
	e.logEvent("tournament_started", map[string]interface{}{
		"agents":      pop.Len(),
		"matches":     len(pairs),
		"turns":       e.opts.Turns,
		"concurrency": e.opts.Concurrency,
	})

	var (
		matches []ipd.MatchResult
		err     error
	)
	if e.opts.Concurrency > 1 {
		matches, err = e.runRounds(ctx, pairs)
	} else {
		matches, err = e.runSequential(ctx, pairs)
	}
	if err != nil {
		return nil, err
	}

	finished := time.Now()
	result := &Result{
		RunID:      e.runID,
		Turns:      e.opts.Turns,
		StartedAt:  started,
		FinishedAt: finished,
		Matches:    matches,
		Standings:  Rank(pop.Members()),
	}

	e.metrics.ObserveTournament(len(matches), finished.Sub(started))
	e.logEvent("tournament_completed", map[string]interface{}{
		"matches":     len(matches),
		"duration_ms": finished.Sub(started).Milliseconds(),
		"leader":      leaderName(result.Standings),
	})
	e.logger.Printf("[Tournament] Run %s complete", e.runID)

	return result, nil
}

func (e *Engine) runSequential(ctx context.Context, pairs []ipd.Pair) ([]ipd.MatchResult, error) {
	matches := make([]ipd.MatchResult, 0, len(pairs))
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("tournament interrupted after %d of %d matches: %w", i, len(pairs), err)
		}
		result, err := e.playMatch(pair)
		if err != nil {
			return nil, err
		}
		matches = append(matches, result)
	}
	return matches, nil
}

// playMatch runs one pairing and records it.
func (e *Engine) playMatch(pair ipd.Pair) (ipd.MatchResult, error) {
	start := time.Now()
	result, err := ipd.RunMatch(pair.A, pair.B, e.opts.Turns, e.opts.Payoff)
	if err != nil {
		return ipd.MatchResult{}, fmt.Errorf("match %s vs %s: %w", pair.A.Name(), pair.B.Name(), err)
	}
	duration := time.Since(start)

	e.metrics.ObserveMatch(result, duration)
	e.logEvent("match_completed", map[string]interface{}{
		"agent_a": result.A.Name,
		"agent_b": result.B.Name,
		"score_a": result.ScoreA,
		"score_b": result.ScoreB,
	})
	return result, nil
}

// Rank orders agents by persistent score, best first. Ties keep population
// order and share a rank (1, 1, 3, ...).
func Rank(agents []*ipd.Agent) []standings.Entry {
	entries := make([]standings.Entry, len(agents))
	for i, a := range agents {
		entries[i] = standings.Entry{
			AgentID:  a.ID(),
			Name:     a.Name(),
			Strategy: a.Kind(),
			Score:    a.Score(),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries
}

// Scores maps agent ID to final persistent score.
func (r *Result) Scores() map[string]int {
	scores := make(map[string]int, len(r.Standings))
	for _, e := range r.Standings {
		scores[e.AgentID] = e.Score
	}
	return scores
}

// Record converts the result into a storable run.
func (r *Result) Record(seed uint64, payoff ipd.Matrix) *standings.Run {
	entries := make([]standings.Entry, len(r.Standings))
	copy(entries, r.Standings)
	return &standings.Run{
		ID:          r.RunID,
		CreatedAtMs: r.FinishedAt.UnixMilli(),
		Turns:       r.Turns,
		Seed:        seed,
		Payoff:      payoff,
		Matches:     len(r.Matches),
		Standings:   entries,
	}
}

// RunRoundRobin plays a sequential round-robin with default options.
func RunRoundRobin(pop *ipd.Population, turns int, payoff ipd.PayoffFunc) (*Result, error) {
	return NewEngine(Options{Turns: turns, Payoff: payoff}).Run(context.Background(), pop)
}

func leaderName(entries []standings.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Name
}

// logEvent emits one structured JSON log line.
func (e *Engine) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "tournament"
	data["event_type"] = eventType
	data["run_id"] = e.runID

	jsonData, err := json.Marshal(data)
	if err != nil {
		e.logger.Printf("[Tournament] Failed to marshal log event: %v", err)
		return
	}

	e.logger.Println(string(jsonData))
}
