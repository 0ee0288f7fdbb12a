package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dyluth/dilemma/internal/config"
	"github.com/dyluth/dilemma/internal/printer"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dilemma",
	Short: "Dilemma - Iterated Prisoner's Dilemma tournaments",
	Long: `Dilemma runs round-robin tournaments of the Iterated Prisoner's Dilemma.

A population of agents, each following a fixed strategy such as Tit for Tat
or Grudger, plays every other agent exactly once. Scores persist across
matches and the final standings can be stored in memory, Redis or SQLite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = versionString()
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "f", "dilemma.yml", "Path to the tournament configuration")
}

// loadConfig reads the configuration at path. A missing file falls back to
// the built-in defaults unless the path was given explicitly.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			[][2]string{{"File", path}},
			[]string{
				"Fix the file and try again",
				"Generate a fresh one:\n     dilemma init --force",
			},
		)
	}
	return cfg, nil
}
