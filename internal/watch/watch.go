// Package watch streams tournament runs as they are saved to a Redis store.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dyluth/dilemma/internal/standings"
	"github.com/redis/go-redis/v9"
)

// OutputFormat selects how streamed runs are written
type OutputFormat int

const (
	OutputFormatDefault OutputFormat = iota // one human-readable line per run
	OutputFormatJSON                        // one JSON object per line
)

// StreamRuns writes every run published on ch until ctx is cancelled or the
// channel closes. Messages that do not decode as a run are reported and
// skipped. Returns the number of runs written.
func StreamRuns(ctx context.Context, ch <-chan *redis.Message, format OutputFormat, w io.Writer) (int, error) {
	count := 0
	for {
		select {
		case <-ctx.Done():
			return count, nil

		case msg, ok := <-ch:
			if !ok {
				return count, nil
			}

			var run standings.Run
			if err := json.Unmarshal([]byte(msg.Payload), &run); err != nil {
				fmt.Fprintf(w, "⚠️  Skipping malformed run event on %s: %v\n", msg.Channel, err)
				continue
			}

			if err := writeRun(w, &run, msg.Payload, format); err != nil {
				return count, err
			}
			count++
		}
	}
}

func writeRun(w io.Writer, run *standings.Run, payload string, format OutputFormat) error {
	if format == OutputFormatJSON {
		if _, err := fmt.Fprintf(w, "%s\n", payload); err != nil {
			return fmt.Errorf("failed to write run event: %w", err)
		}
		return nil
	}

	winner := "no standings"
	if e, ok := run.Winner(); ok {
		winner = fmt.Sprintf("winner %s (%s) with %d", e.Name, e.Strategy, e.Score)
	}

	finished := time.UnixMilli(run.CreatedAtMs).Format("15:04:05")
	shortID := run.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	_, err := fmt.Fprintf(w, "[%s] ✅ Run %s finished: %d agents, %d matches of %d turns, %s\n",
		finished, shortID, len(run.Standings), run.Matches, run.Turns, winner)
	if err != nil {
		return fmt.Errorf("failed to write run event: %w", err)
	}
	return nil
}
