// Package scaffold writes a starter dilemma.yml.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/dilemma/internal/config"
)

// ConfigFile is the name of the generated configuration file.
const ConfigFile = "dilemma.yml"

const configTemplate = `version: "1.0"

tournament:
  # Turns played in every match
  turns: 200
  # Fixes every agent's random source; remove for a time-based seed
  seed: 42
  # Matches played at once; agents are never in two matches at the same time
  concurrency: 4

# Points awarded per turn. A dilemma needs temptation > reward > punishment > sucker.
payoff:
  reward: 3
  temptation: 5
  sucker: 0
  punishment: 1

# One entry per strategy; replicas adds several agents with the same rule.
# Run 'dilemma strategies' to list every name.
population:
  - strategy: Kantian
  - strategy: Defector
  - strategy: Tit for Tat
    replicas: 2
  - strategy: Tit for 2 Tats
  - strategy: Mean Tit for Tat
  - strategy: Wary Tit for Tat
  - strategy: Tester
  - strategy: Conniver
  - strategy: Grudger
  - strategy: Pavlovian
  - strategy: Random

# Where finished runs are kept: memory, redis or sqlite
store:
  backend: memory
  namespace: default
`

// Initialize writes dilemma.yml into dir. With force an existing file is
// replaced, otherwise CheckExisting decides whether to continue.
// Returns the path written.
func Initialize(dir string, force bool) (string, error) {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ConfigFile, err)
	}

	// The template must always load cleanly
	if _, err := config.Load(path); err != nil {
		return "", fmt.Errorf("generated %s is invalid: %w", ConfigFile, err)
	}

	return path, nil
}
