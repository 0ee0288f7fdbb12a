package tournament

import (
	"context"
	"fmt"

	"github.com/dyluth/dilemma/pkg/ipd"
	"golang.org/x/sync/errgroup"
)

// runRounds plays the schedule as rounds of agent-disjoint matches. Matches
// inside a round run concurrently, bounded by Options.Concurrency; rounds run
// one after another, so no agent is ever in two matches at once. Results come
// back in schedule order.
func (e *Engine) runRounds(ctx context.Context, pairs []ipd.Pair) ([]ipd.MatchResult, error) {
	results := make([]ipd.MatchResult, len(pairs))
	rounds := ipd.Rounds(pairs)

	for r, round := range rounds {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("tournament interrupted before round %d of %d: %w", r+1, len(rounds), err)
		}

		g := new(errgroup.Group)
		g.SetLimit(e.opts.Concurrency)
		for _, idx := range round {
			g.Go(func() error {
				result, err := e.playMatch(pairs[idx])
				if err != nil {
					return err
				}
				results[idx] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		e.logEvent("round_completed", map[string]interface{}{
			"round":   r + 1,
			"rounds":  len(rounds),
			"matches": len(round),
		})
	}

	return results, nil
}
