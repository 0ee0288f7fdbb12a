package ipd

import "fmt"

// PayoffFunc maps the two simultaneous actions of a turn to the score deltas
// awarded to each side. It must be pure.
type PayoffFunc func(a, b Action) (deltaA, deltaB int)

// Matrix is the usual four-value payoff table.
type Matrix struct {
	Reward     int `yaml:"reward" json:"reward"`         // both cooperate
	Temptation int `yaml:"temptation" json:"temptation"` // defect against a cooperator
	Sucker     int `yaml:"sucker" json:"sucker"`         // cooperate against a defector
	Punishment int `yaml:"punishment" json:"punishment"` // both defect
}

// ClassicMatrix is the textbook payoff table: (3,3), (1,1), (5,0).
var ClassicMatrix = Matrix{Reward: 3, Temptation: 5, Sucker: 0, Punishment: 1}

// DefaultPayoff applies ClassicMatrix.
func DefaultPayoff(a, b Action) (int, int) {
	return ClassicMatrix.Payoff(a, b)
}

// Payoff returns the deltas for one turn.
func (m Matrix) Payoff(a, b Action) (int, int) {
	switch {
	case a == Cooperate && b == Cooperate:
		return m.Reward, m.Reward
	case a == Defect && b == Defect:
		return m.Punishment, m.Punishment
	case a == Defect:
		return m.Temptation, m.Sucker
	default:
		return m.Sucker, m.Temptation
	}
}

// Func returns the matrix as a PayoffFunc.
func (m Matrix) Func() PayoffFunc {
	return m.Payoff
}

// IsDilemma reports whether the matrix keeps the prisoner's dilemma ordering
// T > R > P > S and 2R > T + S. Other tables are allowed but are no longer
// a dilemma.
func (m Matrix) IsDilemma() bool {
	return m.Temptation > m.Reward &&
		m.Reward > m.Punishment &&
		m.Punishment > m.Sucker &&
		2*m.Reward > m.Temptation+m.Sucker
}

// Validate rejects negative payoffs. Persistent scores only ever increase.
func (m Matrix) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"reward", m.Reward},
		{"temptation", m.Temptation},
		{"sucker", m.Sucker},
		{"punishment", m.Punishment},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("payoff %s must be >= 0, got %d", f.name, f.value)
		}
	}
	return nil
}
