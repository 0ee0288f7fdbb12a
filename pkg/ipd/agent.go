package ipd

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Agent is a tournament participant: a strategy plus a persistent score.
// Identity is by pointer; two agents with the same strategy and score are
// still distinct.
//
// The score is mutated only by RunMatch. An agent can be bound to at most one
// match at a time; RunMatch enforces this and returns *AgentBusyError
// otherwise. Agents are safe to read from multiple goroutines.
type Agent struct {
	id       string
	name     string
	strategy Strategy
	rng      Rand

	mu         sync.Mutex
	score      int
	busy       bool
	lastAction Action // own most recent action in the current match
	hasActed   bool   // false until the first turn of the current match is recorded
}

// NewAgent creates an agent for the given strategy. An empty name defaults to
// the strategy kind. A nil rng gets a private time-seeded source; pass a
// seeded source for reproducible runs.
func NewAgent(name string, strategy Strategy, rng Rand) *Agent {
	if name == "" {
		name = string(strategy.Kind())
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Agent{
		id:       uuid.New().String(),
		name:     name,
		strategy: strategy,
		rng:      rng,
	}
}

// ID returns the agent's UUID.
func (a *Agent) ID() string { return a.id }

// Name returns the display label. It plays no part in identity.
func (a *Agent) Name() string { return a.name }

// Kind returns the strategy kind.
func (a *Agent) Kind() Kind { return a.strategy.Kind() }

// Score returns the persistent score accumulated over every match played.
func (a *Agent) Score() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.score
}

// Busy reports whether the agent is currently bound to a match.
func (a *Agent) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

func (a *Agent) String() string {
	return a.name
}

// acquire binds the agent to a match.
func (a *Agent) acquire() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy {
		return &AgentBusyError{Agent: a.name}
	}
	a.busy = true
	return nil
}

// release unbinds the agent. The last action is kept only for inspection.
func (a *Agent) release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.busy = false
}

// resetForMatch clears all per-match state. Called while bound.
func (a *Agent) resetForMatch() {
	a.mu.Lock()
	a.lastAction = Cooperate
	a.hasActed = false
	a.mu.Unlock()

	a.strategy.Reset()
}

// view is the part of an agent's state its opponent is allowed to see.
type view struct {
	last  Action
	acted bool
	score int
}

func (a *Agent) snapshot() view {
	a.mu.Lock()
	defer a.mu.Unlock()
	return view{last: a.lastAction, acted: a.hasActed, score: a.score}
}

// observe builds the observation for this agent from both snapshots.
func observe(turn int, self, opponent view) Observation {
	return Observation{
		Turn:          turn,
		OwnLast:       self.last,
		OpponentLast:  opponent.last,
		OpponentMoved: opponent.acted,
		Score:         self.score,
	}
}

// record applies one turn's outcome.
func (a *Agent) record(action Action, delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastAction = action
	a.hasActed = true
	a.score += delta
}
