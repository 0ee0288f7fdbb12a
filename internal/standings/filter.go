package standings

import (
	"fmt"
	"path/filepath"
	"time"
)

// Criteria selects stored runs. All filters are ANDed together; zero values
// match everything.
type Criteria struct {
	SinceMs    int64  // Unix milliseconds, 0 = no lower bound
	UntilMs    int64  // Unix milliseconds, 0 = no upper bound
	WinnerGlob string // glob on the winning strategy kind, e.g. "TitFor*"
	Agent      string // exact agent name that must appear in the standings
}

// Matches reports whether run satisfies every criterion.
func (c *Criteria) Matches(run *Run) bool {
	if c.SinceMs > 0 && run.CreatedAtMs < c.SinceMs {
		return false
	}
	if c.UntilMs > 0 && run.CreatedAtMs > c.UntilMs {
		return false
	}

	if c.WinnerGlob != "" {
		winner, ok := run.Winner()
		if !ok {
			return false
		}
		matched, err := filepath.Match(c.WinnerGlob, string(winner.Strategy))
		if err != nil || !matched {
			return false
		}
	}

	if c.Agent != "" {
		found := false
		for _, e := range run.Standings {
			if e.Name == c.Agent {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// HasFilters returns true if any criterion is set.
func (c *Criteria) HasFilters() bool {
	return c.SinceMs > 0 || c.UntilMs > 0 || c.WinnerGlob != "" || c.Agent != ""
}

// Filter returns the runs matching c, keeping their order.
func (c *Criteria) Filter(runs []*Run) []*Run {
	if !c.HasFilters() {
		return runs
	}
	out := make([]*Run, 0, len(runs))
	for _, r := range runs {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// ParseTime parses a time specification into Unix milliseconds.
// Accepts a Go duration ("1h30m"), taken as that long before now, or an
// RFC3339 timestamp.
func ParseTime(spec string, now time.Time) (int64, error) {
	if spec == "" {
		return 0, fmt.Errorf("empty time specification")
	}
	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t.UnixMilli(), nil
	}
	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(-d).UnixMilli(), nil
	}
	return 0, fmt.Errorf("invalid time specification: %s (use duration like '1h30m' or RFC3339 like '2026-10-29T13:00:00Z')", spec)
}

// ParseTimeRange parses --since and --until. Empty values leave that bound open.
func ParseTimeRange(since, until string, now time.Time) (sinceMs, untilMs int64, err error) {
	if since != "" {
		if sinceMs, err = ParseTime(since, now); err != nil {
			return 0, 0, fmt.Errorf("invalid --since: %w", err)
		}
	}
	if until != "" {
		if untilMs, err = ParseTime(until, now); err != nil {
			return 0, 0, fmt.Errorf("invalid --until: %w", err)
		}
	}

	if sinceMs > 0 && untilMs > 0 && sinceMs >= untilMs {
		return 0, 0, fmt.Errorf("--since must be before --until")
	}
	return sinceMs, untilMs, nil
}
