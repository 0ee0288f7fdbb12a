package ipd

// Kind tags a strategy variant.
type Kind string

const (
	KindKantian       Kind = "Kantian"
	KindDefector      Kind = "Defector"
	KindTitForTat     Kind = "TitForTat"
	KindTitFor2Tats   Kind = "TitFor2Tats"
	KindMeanTitForTat Kind = "MeanTitForTat"
	KindWaryTitForTat Kind = "WaryTitForTat"
	KindTester        Kind = "Tester"
	KindConniver      Kind = "Conniver"
	KindGrudger       Kind = "Grudger"
	KindPavlovian     Kind = "Pavlovian"
	KindRandom        Kind = "Random"
	KindClanGrunt     Kind = "ClanGrunt"
	KindClanLeader    Kind = "ClanLeader"
)

// Observation is everything an agent may look at when choosing its next
// action. It is built by the match runner from both agents' state as of the
// end of the previous turn and handed over by value, so a strategy never
// holds a reference to its opponent.
type Observation struct {
	Turn          int    // 1-based turn number within the match
	OwnLast       Action // own action on the previous turn (Cooperate on turn 1)
	OpponentLast  Action // opponent's action on the previous turn, valid when OpponentMoved
	OpponentMoved bool   // false until the opponent's first move has been recorded
	Score         int    // own persistent score, including every earlier turn
}

// Rand is the random source handed to every decision. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Strategy is the decision automaton behind an agent.
//
// Reset is called once at the start of every match and must clear all
// per-match state. Decide is called exactly once per turn, after Reset.
// Strategies may update their own ephemeral state in Decide but see the
// opponent only through the Observation.
type Strategy interface {
	Kind() Kind
	Reset()
	Decide(obs Observation, rng Rand) Action
}

// oneIn reports a 1/n event drawn from rng.
func oneIn(rng Rand, n int) bool {
	return rng.IntN(n) == 0
}

// mirror is the Tit for Tat rule shared by every variant that reuses it:
// cooperate until the opponent has moved, then copy its last action.
func mirror(obs Observation) Action {
	if !obs.OpponentMoved {
		return Cooperate
	}
	return obs.OpponentLast
}
