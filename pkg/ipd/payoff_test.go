package ipd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassicMatrix(t *testing.T) {
	tests := []struct {
		a, b         Action
		wantA, wantB int
	}{
		{Cooperate, Cooperate, 3, 3},
		{Defect, Defect, 1, 1},
		{Defect, Cooperate, 5, 0},
		{Cooperate, Defect, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+tt.b.String(), func(t *testing.T) {
			gotA, gotB := DefaultPayoff(tt.a, tt.b)
			assert.Equal(t, tt.wantA, gotA)
			assert.Equal(t, tt.wantB, gotB)
		})
	}
}

func TestMatrix_IsDilemma(t *testing.T) {
	assert.True(t, ClassicMatrix.IsDilemma())
	assert.False(t, Matrix{Reward: 3, Temptation: 3, Sucker: 0, Punishment: 1}.IsDilemma())
	assert.False(t, Matrix{Reward: 3, Temptation: 10, Sucker: 0, Punishment: 1}.IsDilemma(), "2R must beat T+S")
}

func TestMatrix_Validate(t *testing.T) {
	assert.NoError(t, ClassicMatrix.Validate())

	err := Matrix{Reward: 3, Temptation: 5, Sucker: -1, Punishment: 1}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payoff sucker must be >= 0")
}

func TestAction_JSON(t *testing.T) {
	data, err := json.Marshal([]Action{Cooperate, Defect})
	require.NoError(t, err)
	assert.JSONEq(t, `["C","D"]`, string(data))

	var decoded []Action
	require.NoError(t, json.Unmarshal([]byte(`["c","defect"]`), &decoded))
	assert.Equal(t, []Action{Cooperate, Defect}, decoded)

	assert.Error(t, json.Unmarshal([]byte(`["X"]`), &decoded))
}
