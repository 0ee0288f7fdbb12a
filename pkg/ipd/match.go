package ipd

import "fmt"

// Turn is one simultaneous exchange.
type Turn struct {
	A      Action `json:"a"`
	B      Action `json:"b"`
	DeltaA int    `json:"delta_a"`
	DeltaB int    `json:"delta_b"`
}

// Participant identifies an agent in a match record.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Strategy Kind   `json:"strategy"`
}

// MatchResult is the transient record of one match. Only the score deltas
// survive into the agents.
type MatchResult struct {
	A      Participant `json:"a"`
	B      Participant `json:"b"`
	Turns  []Turn      `json:"turns"`
	ScoreA int         `json:"score_a"` // total delta for A
	ScoreB int         `json:"score_b"` // total delta for B
}

// Cooperation returns how many turns each side cooperated.
func (r MatchResult) Cooperation() (a, b int) {
	for _, t := range r.Turns {
		if t.A == Cooperate {
			a++
		}
		if t.B == Cooperate {
			b++
		}
	}
	return a, b
}

func participant(a *Agent) Participant {
	return Participant{ID: a.ID(), Name: a.Name(), Strategy: a.Kind()}
}

// RunMatch plays a and b against each other for turns turns.
//
// Both agents are bound for the duration of the match and their strategies
// are reset. Each turn both decisions are taken from state as of the end of
// the previous turn, then payoff is applied and added to the persistent
// scores. A nil payoff uses DefaultPayoff.
//
// Returns ErrInvalidMatchConfiguration (before touching any agent) when turns
// < 1, and *AgentBusyError when either agent is already in a match.
func RunMatch(a, b *Agent, turns int, payoff PayoffFunc) (MatchResult, error) {
	if turns < 1 {
		return MatchResult{}, fmt.Errorf("%w: turn count must be >= 1, got %d", ErrInvalidMatchConfiguration, turns)
	}
	if a == nil || b == nil {
		return MatchResult{}, fmt.Errorf("%w: both agents are required", ErrInvalidMatchConfiguration)
	}
	if payoff == nil {
		payoff = DefaultPayoff
	}

	if err := a.acquire(); err != nil {
		return MatchResult{}, err
	}
	defer a.release()
	if err := b.acquire(); err != nil {
		return MatchResult{}, err
	}
	defer b.release()

	a.resetForMatch()
	b.resetForMatch()

	result := MatchResult{
		A:     participant(a),
		B:     participant(b),
		Turns: make([]Turn, 0, turns),
	}

	for t := 1; t <= turns; t++ {
		viewA, viewB := a.snapshot(), b.snapshot()
		actionA := a.strategy.Decide(observe(t, viewA, viewB), a.rng)
		actionB := b.strategy.Decide(observe(t, viewB, viewA), b.rng)

		deltaA, deltaB := payoff(actionA, actionB)
		a.record(actionA, deltaA)
		b.record(actionB, deltaB)

		result.Turns = append(result.Turns, Turn{A: actionA, B: actionB, DeltaA: deltaA, DeltaB: deltaB})
		result.ScoreA += deltaA
		result.ScoreB += deltaB
	}

	return result, nil
}
