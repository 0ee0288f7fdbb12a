package ipd

import "testing"

// seqRand returns scripted values, then n-1 forever (never a "1 in n" hit).
type seqRand struct {
	vals []int
	i    int
}

func newSeqRand(vals ...int) *seqRand {
	return &seqRand{vals: vals}
}

func (r *seqRand) IntN(n int) int {
	if r.i >= len(r.vals) {
		return n - 1
	}
	v := r.vals[r.i] % n
	r.i++
	return v
}

// scripted plays a fixed list of moves, cooperating once the list runs out.
type scripted struct {
	moves []Action
}

func (s *scripted) Kind() Kind { return "Scripted" }
func (s *scripted) Reset()     {}

func (s *scripted) Decide(obs Observation, _ Rand) Action {
	if obs.Turn-1 < len(s.moves) {
		return s.moves[obs.Turn-1]
	}
	return Cooperate
}

// moves parses "CDDC" into actions.
func moves(s string) []Action {
	out := make([]Action, 0, len(s))
	for _, r := range s {
		out = append(out, r == 'C')
	}
	return out
}

func actionsOf(result MatchResult, side string) string {
	out := make([]byte, 0, len(result.Turns))
	for _, t := range result.Turns {
		a := t.A
		if side == "b" {
			a = t.B
		}
		out = append(out, a.String()[0])
	}
	return string(out)
}

func mustAgent(t testing.TB, name string, rng Rand) *Agent {
	t.Helper()
	a, err := NewAgentByName(name, "", rng)
	if err != nil {
		t.Fatalf("failed to build %s: %v", name, err)
	}
	return a
}
