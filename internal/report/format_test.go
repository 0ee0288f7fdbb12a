package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dyluth/dilemma/internal/standings"
	"github.com/dyluth/dilemma/pkg/ipd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playMatch(t *testing.T, a, b string, turns int) ipd.MatchResult {
	t.Helper()
	agentA, err := ipd.NewAgentByName(a, "", nil)
	require.NoError(t, err)
	agentB, err := ipd.NewAgentByName(b, "", nil)
	require.NoError(t, err)
	m, err := ipd.RunMatch(agentA, agentB, turns, nil)
	require.NoError(t, err)
	return m
}

func sampleRun() *standings.Run {
	return &standings.Run{
		ID:          "1b4e28ba-2fa1-4d2b-883f-0016d3cca427",
		CreatedAtMs: time.Now().Add(-5 * time.Minute).UnixMilli(),
		Turns:       10,
		Payoff:      ipd.ClassicMatrix,
		Matches:     1,
		Standings: []standings.Entry{
			{Rank: 1, AgentID: "a", Name: "Defector", Strategy: ipd.KindDefector, Score: 50},
			{Rank: 2, AgentID: "b", Name: "Kantian", Strategy: ipd.KindKantian, Score: 0},
		},
	}
}

func TestMoves(t *testing.T) {
	m := playMatch(t, "Kantian", "Defector", 4)
	a, b := Moves(m)
	assert.Equal(t, "CCCC", a)
	assert.Equal(t, "DDDD", b)
}

func TestFormatStandings(t *testing.T) {
	var buf bytes.Buffer
	n := FormatStandings(&buf, sampleRun())
	assert.Equal(t, 2, n)

	out := buf.String()
	assert.Contains(t, out, "Standings for run '1b4e28ba' (1 matches, 10 turns each)")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Defector")
	assert.Contains(t, out, "Winner: Defector (Defector) with 50 points")
}

func TestFormatStandings_Empty(t *testing.T) {
	var buf bytes.Buffer
	n := FormatStandings(&buf, &standings.Run{ID: "1b4e28ba-2fa1"})
	assert.Equal(t, 0, n)
	assert.Equal(t, "No standings recorded for run '1b4e28ba'\n", buf.String())
}

func TestFormatRuns(t *testing.T) {
	t.Run("lists runs with age and winner", func(t *testing.T) {
		var buf bytes.Buffer
		n := FormatRuns(&buf, []*standings.Run{sampleRun()}, "default")
		assert.Equal(t, 1, n)
		out := buf.String()
		assert.Contains(t, out, "Runs in namespace 'default'")
		assert.Contains(t, out, "5m ago")
		assert.Contains(t, out, "Defector (50)")
		assert.Contains(t, out, "1 run found")
	})

	t.Run("empty namespace", func(t *testing.T) {
		var buf bytes.Buffer
		n := FormatRuns(&buf, nil, "lab")
		assert.Equal(t, 0, n)
		assert.Equal(t, "No runs found in namespace 'lab'\n", buf.String())
	})
}

func TestFormatMatches(t *testing.T) {
	var buf bytes.Buffer
	n := FormatMatches(&buf, []ipd.MatchResult{playMatch(t, "Kantian", "Defector", 3)})
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "CCC/DDD")
	assert.Contains(t, buf.String(), "0:15")

	buf.Reset()
	assert.Equal(t, 0, FormatMatches(&buf, nil))
	assert.Equal(t, "No matches played\n", buf.String())
}

func TestFormatJSONL(t *testing.T) {
	matches := []ipd.MatchResult{
		playMatch(t, "Kantian", "Defector", 2),
		playMatch(t, "Tit for Tat", "Tit for Tat", 3),
	}

	var buf bytes.Buffer
	require.NoError(t, FormatJSONL(&buf, matches))

	var lines []MatchLine
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var line MatchLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.Len(t, lines, 2)

	assert.Equal(t, "CC", lines[0].MovesA)
	assert.Equal(t, "DD", lines[0].MovesB)
	assert.Equal(t, 10, lines[0].ScoreB)
	assert.Equal(t, ipd.KindDefector, lines[0].B.Strategy)
	assert.Equal(t, "CCC", lines[1].MovesA)
	assert.Equal(t, 9, lines[1].ScoreA)
}

func TestFormatRunsJSONL(t *testing.T) {
	second := sampleRun()
	second.ID = "2c5f39cb-3ab2-4e3c-994a-1127e4ddb538"

	var buf bytes.Buffer
	require.NoError(t, FormatRunsJSONL(&buf, []*standings.Run{sampleRun(), second}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var decoded standings.Run
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &decoded))
	assert.Equal(t, second.ID, decoded.ID)
	assert.Equal(t, 50, decoded.Standings[0].Score)
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, sampleRun()))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	var decoded standings.Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleRun().Standings, decoded.Standings)
}

func TestFormatAge(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "-", formatAge(0))
	assert.Equal(t, "2h ago", formatAge(now.Add(-2*time.Hour-time.Minute).UnixMilli()))
	assert.Equal(t, "3d ago", formatAge(now.Add(-73*time.Hour).UnixMilli()))
}
