package commands

import (
	"github.com/dyluth/dilemma/internal/printer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dilemma version",
	Run: func(cmd *cobra.Command, args []string) {
		printer.Info("dilemma %s\n", versionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
