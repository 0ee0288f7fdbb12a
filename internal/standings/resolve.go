package standings

import (
	"context"
	"fmt"
	"strings"
)

// MinShortIDLength is the minimum required length for short run ID prefixes.
const MinShortIDLength = 6

// ResolveRunID resolves a short ID prefix to a full run ID.
//
// Full UUIDs are checked for existence and returned as-is. Prefixes shorter
// than MinShortIDLength are rejected. Otherwise exactly one stored run must
// match the prefix.
func ResolveRunID(ctx context.Context, store Store, shortID string) (string, error) {
	if len(shortID) == 36 && strings.Count(shortID, "-") == 4 {
		if _, err := store.GetRun(ctx, shortID); err != nil {
			if IsNotFound(err) {
				return "", &NotFoundError{ShortID: shortID}
			}
			return "", fmt.Errorf("failed to verify run existence: %w", err)
		}
		return shortID, nil
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to search for run: %w", err)
	}

	var matches []string
	for _, run := range runs {
		if strings.HasPrefix(run.ID, shortID) {
			matches = append(matches, run.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

// NotFoundError indicates no runs matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no runs found matching '%s'", e.ShortID)
}

// Is makes errors.Is(err, ErrNotFound) work.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AmbiguousError indicates multiple runs matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d runs", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly message listing up to 10 matches.
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: ambiguous short ID '%s' matches %d runs:\n", err.ShortID, len(err.Matches))

	displayCount := min(len(err.Matches), 10)
	for i := 0; i < displayCount; i++ {
		fmt.Fprintf(&b, "  %s\n", err.Matches[i])
	}
	if len(err.Matches) > 10 {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-10)
	}

	b.WriteString("\nUse a longer prefix to uniquely identify the run.")
	return b.String()
}
