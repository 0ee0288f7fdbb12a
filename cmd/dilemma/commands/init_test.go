package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/dilemma/internal/config"
	"github.com/dyluth/dilemma/internal/scaffold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, scaffold.ConfigFile)

	stdout, _ := captureOutput(t)
	require.NoError(t, initProject(dir, false))
	assert.Contains(t, stdout.String(), "✓ Created "+path)
	assert.Contains(t, stdout.String(), "dilemma run")

	_, err := config.Load(path)
	require.NoError(t, err)

	t.Run("second init fails without force", func(t *testing.T) {
		_, stderr := captureOutput(t)
		err := initProject(dir, false)
		require.Error(t, err)
		assert.Equal(t, "initialization failed", err.Error())
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("force overwrites and warns", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("broken"), 0644))

		_, stderr := captureOutput(t)
		require.NoError(t, initProject(dir, true))
		assert.Contains(t, stderr.String(), "Overwriting existing dilemma.yml")

		_, err := config.Load(path)
		assert.NoError(t, err)
	})
}

func TestRunUsesScaffoldedConfig(t *testing.T) {
	dir := t.TempDir()
	captureOutput(t)
	require.NoError(t, initProject(dir, false))

	record, err := executeRun(t.Context(), runOptions{
		ConfigPath:     filepath.Join(dir, scaffold.ConfigFile),
		ConfigExplicit: true,
		Turns:          20,
		Output:         outputJSON,
	})
	require.NoError(t, err)
	assert.Len(t, record.Standings, 12)
	assert.Equal(t, 66, record.Matches)
	assert.Equal(t, uint64(42), record.Seed)
}
