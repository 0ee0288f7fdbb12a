package ipd

// probePhase is the state of the Tester/Conniver probe protocol.
type probePhase int

const (
	probeDormant    probePhase = iota // playing Tit for Tat, may launch a probe
	probeTestWindow                   // cooperating while watching for retaliation
	probeExploit                      // opponent did not retaliate
	probeReconciled                   // opponent retaliated, back to Tit for Tat for good
)

// probeChance is the 1-in-n chance per dormant turn of launching a probe.
const probeChance = 6

// prober runs the probe protocol. An exploratory defection is followed by a
// test window of cooperative turns. If the opponent defects on any window
// turn it has retaliated, and the prober reconciles into Tit for Tat for the
// rest of the match. Otherwise it switches to its exploit rule.
//
// The opponent's action on window turn k is only observable at turn k+1,
// so the verdict is reached on the first turn after the window.
type prober struct {
	kind    Kind
	window  int                   // number of cooperative test turns
	exploit func(turn int) Action // rule used once the opponent is found exploitable

	phase      probePhase
	windowTurn int  // window turns played so far
	retaliated bool // latched for the rest of the match
}

func (p *prober) Kind() Kind { return p.kind }

func (p *prober) Reset() {
	p.phase = probeDormant
	p.windowTurn = 0
	p.retaliated = false
}

func (p *prober) Decide(obs Observation, rng Rand) Action {
	switch p.phase {
	case probeDormant:
		if oneIn(rng, probeChance) {
			p.phase = probeTestWindow
			p.windowTurn = 0
			return Defect
		}
		return mirror(obs)

	case probeTestWindow:
		// The previous turn was a window turn once at least one has been played
		if p.windowTurn > 0 && obs.OpponentMoved && obs.OpponentLast == Defect {
			p.retaliated = true
		}
		if p.windowTurn < p.window {
			p.windowTurn++
			return Cooperate
		}
		if p.retaliated {
			p.phase = probeReconciled
		} else {
			p.phase = probeExploit
		}
		return p.settled(obs)

	default:
		return p.settled(obs)
	}
}

// settled plays the post-window rule.
func (p *prober) settled(obs Observation) Action {
	if p.phase == probeExploit {
		return p.exploit(obs.Turn)
	}
	return mirror(obs)
}

// Retaliated reports whether the opponent defected during the test window.
func (p *prober) Retaliated() bool {
	return p.retaliated
}

// NewTester returns a Tester: a Tit for 2 Tats exploiter with a one-turn test
// window that alternates defect and cooperate by turn parity when the
// opponent does not retaliate.
func NewTester() Strategy {
	return &prober{
		kind:   KindTester,
		window: 1,
		exploit: func(turn int) Action {
			if turn%2 == 1 {
				return Cooperate
			}
			return Defect
		},
	}
}

// NewConniver returns a Conniver: a Kantian exploiter with a two-turn test
// window that defects unconditionally when the opponent does not retaliate.
func NewConniver() Strategy {
	return &prober{
		kind:    KindConniver,
		window:  2,
		exploit: func(int) Action { return Defect },
	}
}
