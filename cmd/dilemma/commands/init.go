package commands

import (
	"github.com/dyluth/dilemma/internal/printer"
	"github.com/dyluth/dilemma/internal/scaffold"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter dilemma.yml",
	Long: `Create a dilemma.yml in the current directory with one agent per
strategy, the classic payoff matrix and an in-memory store.

Use --force to overwrite an existing dilemma.yml.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing dilemma.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	return initProject(".", forceInit)
}

func initProject(dir string, force bool) error {
	if force {
		if err := scaffold.CheckExisting(dir); err != nil {
			printer.Warning("Overwriting existing %s\n", scaffold.ConfigFile)
		}
	}

	path, err := scaffold.Initialize(dir, force)
	if err != nil {
		return printer.Error(
			"initialization failed",
			err.Error(),
			nil,
		)
	}

	printer.Success("Created %s\n", path)
	printer.Info("\nNext steps:\n")
	printer.Info("  1. Edit the population in %s\n", scaffold.ConfigFile)
	printer.Info("  2. Run the tournament:\n       dilemma run\n")
	return nil
}
