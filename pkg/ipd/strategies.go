package ipd

// Kantian always cooperates.
type Kantian struct{}

func (Kantian) Kind() Kind                      { return KindKantian }
func (Kantian) Reset()                          {}
func (Kantian) Decide(Observation, Rand) Action { return Cooperate }

// Defector always defects.
type Defector struct{}

func (Defector) Kind() Kind                      { return KindDefector }
func (Defector) Reset()                          {}
func (Defector) Decide(Observation, Rand) Action { return Defect }

// TitForTat cooperates first, then mirrors the opponent's previous action.
type TitForTat struct{}

func (TitForTat) Kind() Kind { return KindTitForTat }
func (TitForTat) Reset()     {}

func (TitForTat) Decide(obs Observation, _ Rand) Action {
	return mirror(obs)
}

// WaryTitForTat defects first, then mirrors like TitForTat.
type WaryTitForTat struct{}

func (WaryTitForTat) Kind() Kind { return KindWaryTitForTat }
func (WaryTitForTat) Reset()     {}

func (WaryTitForTat) Decide(obs Observation, _ Rand) Action {
	if !obs.OpponentMoved {
		return Defect
	}
	return mirror(obs)
}

// MeanTitForTat plays TitForTat but defects with probability 1/6 on any turn.
type MeanTitForTat struct{}

func (MeanTitForTat) Kind() Kind { return KindMeanTitForTat }
func (MeanTitForTat) Reset()     {}

func (MeanTitForTat) Decide(obs Observation, rng Rand) Action {
	if oneIn(rng, 6) {
		return Defect
	}
	return mirror(obs)
}

// TitFor2Tats only retaliates after two consecutive defections.
type TitFor2Tats struct {
	window [2]Action // opponent's two most recent actions, oldest first
}

func (s *TitFor2Tats) Kind() Kind { return KindTitFor2Tats }

func (s *TitFor2Tats) Reset() {
	s.window = [2]Action{Cooperate, Cooperate}
}

func (s *TitFor2Tats) Decide(obs Observation, _ Rand) Action {
	// Missing history counts as cooperation
	latest := Cooperate
	if obs.OpponentMoved {
		latest = obs.OpponentLast
	}
	s.window = [2]Action{s.window[1], latest}

	if s.window[0] == Defect && s.window[1] == Defect {
		return Defect
	}
	return Cooperate
}

// Grudger cooperates until the opponent defects once, then defects for the
// rest of the match.
type Grudger struct {
	grudge bool
}

func (s *Grudger) Kind() Kind { return KindGrudger }
func (s *Grudger) Reset()     { s.grudge = false }

func (s *Grudger) Decide(obs Observation, _ Rand) Action {
	if obs.OpponentMoved && obs.OpponentLast == Defect {
		s.grudge = true
	}
	if s.grudge {
		return Defect
	}
	return Cooperate
}

// Pavlovian is win-stay, lose-shift: it repeats its previous action when its
// score went up on the last turn and flips it otherwise.
type Pavlovian struct {
	started      bool
	lastSnapshot int // persistent score seen on the previous decision
}

func (s *Pavlovian) Kind() Kind { return KindPavlovian }

func (s *Pavlovian) Reset() {
	s.started = false
	s.lastSnapshot = 0
}

func (s *Pavlovian) Decide(obs Observation, _ Rand) Action {
	previous := s.lastSnapshot
	s.lastSnapshot = obs.Score

	if !s.started {
		s.started = true
		return Cooperate
	}
	if obs.Score > previous {
		return obs.OwnLast
	}
	return obs.OwnLast.Flip()
}

// Random cooperates or defects with equal probability, independently each turn.
type Random struct{}

func (Random) Kind() Kind { return KindRandom }
func (Random) Reset()     {}

func (Random) Decide(_ Observation, rng Rand) Action {
	if rng.IntN(2) == 0 {
		return Cooperate
	}
	return Defect
}
