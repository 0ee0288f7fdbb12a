package ipd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, a, b *Agent, turns int) MatchResult {
	t.Helper()
	result, err := RunMatch(a, b, turns, nil)
	require.NoError(t, err)
	return result
}

func against(t *testing.T, name string, rng Rand, opponent string, turns int) (MatchResult, *Agent) {
	t.Helper()
	agent := mustAgent(t, name, rng)
	opp := NewAgent("script", &scripted{moves: moves(opponent)}, nil)
	return play(t, agent, opp, turns), agent
}

func TestTitForTat_FixedPoint(t *testing.T) {
	for _, turns := range []int{1, 2, 7, 50} {
		a := mustAgent(t, "Tit for Tat", nil)
		b := mustAgent(t, "Tit for Tat", nil)

		result := play(t, a, b, turns)
		for i, turn := range result.Turns {
			assert.Equal(t, Turn{A: Cooperate, B: Cooperate, DeltaA: 3, DeltaB: 3}, turn, "turn %d", i+1)
		}
		assert.Equal(t, 3*turns, a.Score())
		assert.Equal(t, 3*turns, b.Score())
	}
}

func TestTitForTat_MirrorsPreviousMove(t *testing.T) {
	result, _ := against(t, "Tit for Tat", nil, "DCDDC", 6)
	assert.Equal(t, "CDCDDC", actionsOf(result, "a"))
}

func TestWaryTitForTat(t *testing.T) {
	wary := mustAgent(t, "Wary Tit for Tat", nil)
	tft := mustAgent(t, "Tit for Tat", nil)

	result := play(t, wary, tft, 4)
	assert.Equal(t, "DCDC", actionsOf(result, "a"))
	assert.Equal(t, "CDCD", actionsOf(result, "b"))
}

func TestTitFor2Tats(t *testing.T) {
	t.Run("forgives an isolated defection", func(t *testing.T) {
		result, _ := against(t, "Tit for 2 Tats", nil, "CDCCCDC", 8)
		assert.Equal(t, "CCCCCCCC", actionsOf(result, "a"))
	})

	t.Run("retaliates after two consecutive defections", func(t *testing.T) {
		result, _ := against(t, "Tit for 2 Tats", nil, "CDDCCC", 6)
		assert.Equal(t, "CCCDCC", actionsOf(result, "a"))
	})

	t.Run("keeps retaliating while defections continue", func(t *testing.T) {
		result, _ := against(t, "Tit for 2 Tats", nil, "DDDDC", 6)
		assert.Equal(t, "CCDDDC", actionsOf(result, "a"))
	})

	t.Run("window is reset between matches", func(t *testing.T) {
		agent := mustAgent(t, "Tit for 2 Tats", nil)
		first := NewAgent("script", &scripted{moves: moves("DD")}, nil)
		play(t, agent, first, 2)

		// The two defections above must not count in the next match
		second := NewAgent("script", &scripted{moves: moves("D")}, nil)
		result := play(t, agent, second, 3)
		assert.Equal(t, "CCC", actionsOf(result, "a"))
	})
}

func TestMeanTitForTat(t *testing.T) {
	rng := newSeqRand(5, 0, 5, 5, 0)
	result, _ := against(t, "Mean Tit for Tat", rng, "CCCCC", 5)
	assert.Equal(t, "CDCCD", actionsOf(result, "a"))
}

func TestGrudger(t *testing.T) {
	t.Run("holds the grudge for the rest of the match", func(t *testing.T) {
		result, _ := against(t, "Grudger", nil, "CDCCCC", 6)
		assert.Equal(t, "CCDDDD", actionsOf(result, "a"))
	})

	t.Run("cooperates with cooperators", func(t *testing.T) {
		result, _ := against(t, "Grudger", nil, "CCCC", 4)
		assert.Equal(t, "CCCC", actionsOf(result, "a"))
	})

	t.Run("forgets between matches", func(t *testing.T) {
		grudger := mustAgent(t, "Grudger", nil)
		play(t, grudger, mustAgent(t, "Defector", nil), 3)

		result := play(t, grudger, mustAgent(t, "Kantian", nil), 3)
		assert.Equal(t, "CCC", actionsOf(result, "a"))
	})
}

func TestPavlovian(t *testing.T) {
	t.Run("shifts after losing then stays while winning", func(t *testing.T) {
		pav := mustAgent(t, "Pavlovian", nil)
		result := play(t, pav, mustAgent(t, "Defector", nil), 4)
		// C earns 0 so it shifts, D earns 1 each turn so it stays
		assert.Equal(t, "CDDD", actionsOf(result, "a"))
		assert.Equal(t, 3, pav.Score())
	})

	t.Run("stays cooperative while rewarded", func(t *testing.T) {
		pav := mustAgent(t, "Pavlovian", nil)
		result := play(t, pav, mustAgent(t, "Kantian", nil), 4)
		assert.Equal(t, "CCCC", actionsOf(result, "a"))
	})

	t.Run("uses score gained within the match only", func(t *testing.T) {
		pav := mustAgent(t, "Pavlovian", nil)
		play(t, pav, mustAgent(t, "Kantian", nil), 5)
		require.Equal(t, 15, pav.Score())

		result := play(t, pav, mustAgent(t, "Defector", nil), 3)
		assert.Equal(t, "CDD", actionsOf(result, "a"))
	})
}

func TestRandom(t *testing.T) {
	rng := newSeqRand(0, 1, 1, 0)
	result, _ := against(t, "Random", rng, "CCCC", 4)
	assert.Equal(t, "CDDC", actionsOf(result, "a"))
}

func TestKantianAndDefector(t *testing.T) {
	result, _ := against(t, "Kantian", nil, "DDD", 3)
	assert.Equal(t, "CCC", actionsOf(result, "a"))

	result, _ = against(t, "Defector", nil, "CCC", 3)
	assert.Equal(t, "DDD", actionsOf(result, "a"))
}
