package commands

import (
	"fmt"
	"io"

	"github.com/dyluth/dilemma/internal/printer"
	"github.com/dyluth/dilemma/internal/report"
	"github.com/dyluth/dilemma/pkg/ipd"
	"github.com/spf13/cobra"
)

var (
	strategiesAll    bool
	strategiesOutput string
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available strategies",
	Long: `List every strategy that can be used in a population.

Names are matched ignoring case, spaces, hyphens and underscores, so
"Tit for Tat", "tit-for-tat" and "TitForTat" are the same strategy.

Use --all to include named strategies that have no decision rule yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listStrategies(printer.Stdout, strategiesOutput, strategiesAll)
	},
}

func init() {
	strategiesCmd.Flags().BoolVar(&strategiesAll, "all", false, "Include strategies without a decision rule")
	strategiesCmd.Flags().StringVarP(&strategiesOutput, "output", "o", outputDefault, "Output format: default or json")
	rootCmd.AddCommand(strategiesCmd)
}

func listStrategies(w io.Writer, output string, all bool) error {
	var descriptors []ipd.Descriptor
	for _, d := range ipd.Strategies() {
		if d.Unspecified && !all {
			continue
		}
		descriptors = append(descriptors, d)
	}

	switch output {
	case outputJSON:
		return report.FormatJSON(w, descriptors)
	case outputDefault:
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", output),
			[]string{"Valid formats: default, json"},
		)
	}

	fmt.Fprintf(w, "%-18s %-7s %s\n", "NAME", "RANDOM", "DESCRIPTION")
	for _, d := range descriptors {
		random := "-"
		if d.Randomized {
			random = "yes"
		}
		fmt.Fprintf(w, "%-18s %-7s %s\n", d.Name, random, d.Description)
	}
	return nil
}
