// Package report renders tournament results and stored runs for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dyluth/dilemma/internal/standings"
	"github.com/dyluth/dilemma/pkg/ipd"
)

// maxMovesWidth caps the move history shown per side in the match table.
const maxMovesWidth = 24

// MatchLine is the compact JSONL form of a match: move histories are strings
// of C and D rather than per-turn objects.
type MatchLine struct {
	A      ipd.Participant `json:"a"`
	B      ipd.Participant `json:"b"`
	ScoreA int             `json:"score_a"`
	ScoreB int             `json:"score_b"`
	MovesA string          `json:"moves_a"`
	MovesB string          `json:"moves_b"`
}

// NewMatchLine summarises a match result.
func NewMatchLine(m ipd.MatchResult) MatchLine {
	a, b := Moves(m)
	return MatchLine{A: m.A, B: m.B, ScoreA: m.ScoreA, ScoreB: m.ScoreB, MovesA: a, MovesB: b}
}

// Moves returns each side's history as a string such as "CCDC".
func Moves(m ipd.MatchResult) (a, b string) {
	var sa, sb strings.Builder
	for _, t := range m.Turns {
		sa.WriteString(t.A.String())
		sb.WriteString(t.B.String())
	}
	return sa.String(), sb.String()
}

// FormatStandings writes the final standings of a run as a table.
// Returns the number of entries written.
func FormatStandings(w io.Writer, run *standings.Run) int {
	if len(run.Standings) == 0 {
		fmt.Fprintf(w, "No standings recorded for run '%s'\n", formatID(run.ID))
		return 0
	}

	fmt.Fprintf(w, "Standings for run '%s' (%d matches, %d turns each):\n\n",
		formatID(run.ID), run.Matches, run.Turns)

	fmt.Fprintf(w, "%-5s %-22s %-15s %8s\n", "RANK", "NAME", "STRATEGY", "SCORE")
	fmt.Fprintf(w, "%-5s %-22s %-15s %8s\n", "-----", "----------------------", "---------------", "--------")

	for _, e := range run.Standings {
		fmt.Fprintf(w, "%-5d %-22s %-15s %8d\n", e.Rank, truncate(e.Name, 22), e.Strategy, e.Score)
	}

	if winner, ok := run.Winner(); ok {
		fmt.Fprintf(w, "\nWinner: %s (%s) with %d points\n", winner.Name, winner.Strategy, winner.Score)
	}
	return len(run.Standings)
}

// FormatRuns writes a list of stored runs as a table.
// Returns the number of runs written.
func FormatRuns(w io.Writer, runs []*standings.Run, namespace string) int {
	if len(runs) == 0 {
		fmt.Fprintf(w, "No runs found in namespace '%s'\n", namespace)
		return 0
	}

	fmt.Fprintf(w, "Runs in namespace '%s':\n\n", namespace)

	fmt.Fprintf(w, "%-10s %-8s %-6s %-7s %s\n", "ID", "AGE", "TURNS", "AGENTS", "WINNER")
	fmt.Fprintf(w, "%-10s %-8s %-6s %-7s %s\n", "----------", "--------", "------", "-------", "----------------------")

	for _, r := range runs {
		winner := "-"
		if e, ok := r.Winner(); ok {
			winner = fmt.Sprintf("%s (%d)", e.Name, e.Score)
		}
		fmt.Fprintf(w, "%-10s %-8s %-6d %-7d %s\n",
			formatID(r.ID),
			formatAge(r.CreatedAtMs),
			r.Turns,
			len(r.Standings),
			winner,
		)
	}

	countMsg := "run"
	if len(runs) != 1 {
		countMsg = "runs"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(runs), countMsg)
	return len(runs)
}

// FormatMatches writes one row per match with scores, cooperation counts and
// the opening moves of each side.
func FormatMatches(w io.Writer, matches []ipd.MatchResult) int {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches played")
		return 0
	}

	fmt.Fprintf(w, "%-18s %-18s %11s %9s  %s\n", "A", "B", "SCORE", "COOP", "MOVES")
	for _, m := range matches {
		coopA, coopB := m.Cooperation()
		movesA, movesB := Moves(m)
		fmt.Fprintf(w, "%-18s %-18s %5d:%-5d %4d:%-4d  %s/%s\n",
			truncate(m.A.Name, 18),
			truncate(m.B.Name, 18),
			m.ScoreA, m.ScoreB,
			coopA, coopB,
			truncate(movesA, maxMovesWidth),
			truncate(movesB, maxMovesWidth),
		)
	}
	return len(matches)
}

// FormatJSONL writes each match as a single-line JSON object.
// This format is ideal for streaming and processing with tools like jq.
func FormatJSONL(w io.Writer, matches []ipd.MatchResult) error {
	for _, m := range matches {
		data, err := json.Marshal(NewMatchLine(m))
		if err != nil {
			return fmt.Errorf("failed to marshal match to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatRunsJSONL writes each stored run as a single-line JSON object.
func FormatRunsJSONL(w io.Writer, runs []*standings.Run) error {
	for _, r := range runs {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal run to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatJSON writes v as pretty-printed JSON followed by a newline.
func FormatJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// formatID truncates a UUID to its first 8 characters for compact display.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// formatAge renders a Unix millisecond timestamp as relative time like "2m ago".
func formatAge(timestampMs int64) string {
	if timestampMs == 0 {
		return "-"
	}

	diff := time.Since(time.UnixMilli(timestampMs))
	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
