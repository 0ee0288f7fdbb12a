package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dyluth/dilemma/internal/config"
	"github.com/dyluth/dilemma/internal/printer"
	"github.com/dyluth/dilemma/internal/report"
	"github.com/dyluth/dilemma/internal/standings"
	"github.com/spf13/cobra"
)

// standingsOptions selects the store and output for the standings command
type standingsOptions struct {
	ConfigPath     string
	ConfigExplicit bool
	Store          string
	RedisAddr      string
	Namespace      string
	Output         string
	Since          string
	Until          string
	Winner         string
	Agent          string
}

var standingsFlags standingsOptions

var standingsCmd = &cobra.Command{
	Use:   "standings [RUN_ID]",
	Short: "Inspect stored tournament runs",
	Long: `Inspect tournament runs kept by the configured store.

List Mode (no RUN_ID):
  Lists every stored run, newest first.
  --since, --until  - Only runs finished in this window (duration or RFC3339)
  --winner          - Glob on the winning strategy kind ("TitFor*")
  --agent           - Only runs with an agent of this exact name

Get Mode (with RUN_ID):
  Shows the final standings of one run.
  Supports short IDs (e.g., "1b4e28" instead of the full UUID).

The memory store only lives for a single 'dilemma run', so use redis or
sqlite to inspect runs afterwards.

Examples:
  # List runs kept in Redis
  dilemma standings --store redis

  # Runs from the last two hours won by a Tit for Tat variant
  dilemma standings --store sqlite --since=2h --winner="*TitFor*"

  # Show one run as JSON
  dilemma standings 1b4e28 --store redis -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := standingsFlags
		opts.ConfigPath = configPath
		opts.ConfigExplicit = cmd.Flags().Changed("config")

		runID := ""
		if len(args) == 1 {
			runID = args[0]
		}
		return showStandings(cmd.Context(), opts, runID)
	},
}

func init() {
	f := standingsCmd.Flags()
	f.StringVar(&standingsFlags.Store, "store", "", "Store backend: memory, redis or sqlite (overrides config)")
	f.StringVar(&standingsFlags.RedisAddr, "redis-addr", "", "Redis address for the redis store")
	f.StringVar(&standingsFlags.Namespace, "namespace", "", "Store namespace")
	f.StringVarP(&standingsFlags.Output, "output", "o", outputDefault, "Output format: default, jsonl or json")
	f.StringVar(&standingsFlags.Since, "since", "", "Show runs finished after time (duration or RFC3339)")
	f.StringVar(&standingsFlags.Until, "until", "", "Show runs finished before time (duration or RFC3339)")
	f.StringVar(&standingsFlags.Winner, "winner", "", "Filter by winning strategy kind (glob pattern)")
	f.StringVar(&standingsFlags.Agent, "agent", "", "Filter by agent name (exact match)")
	rootCmd.AddCommand(standingsCmd)
}

func showStandings(ctx context.Context, opts standingsOptions, runID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch opts.Output {
	case outputDefault, outputJSONL, outputJSON:
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", opts.Output),
			[]string{"Valid formats: default, jsonl, json"},
		)
	}

	sinceMs, untilMs, err := standings.ParseTimeRange(opts.Since, opts.Until, time.Now())
	if err != nil {
		return printer.Error(
			"invalid time filter",
			err.Error(),
			[]string{"Use a duration like '2h' or an RFC3339 time like '2026-10-29T13:00:00Z'"},
		)
	}
	criteria := &standings.Criteria{
		SinceMs:    sinceMs,
		UntilMs:    untilMs,
		WinnerGlob: opts.Winner,
		Agent:      opts.Agent,
	}

	cfg, err := loadConfig(opts.ConfigPath, opts.ConfigExplicit)
	if err != nil {
		return err
	}
	sc := storeOverrides(cfg.Store, opts)
	if err := sc.Validate(); err != nil {
		return printer.Error("invalid store settings", err.Error(), nil)
	}
	if sc.Backend == "memory" {
		printer.Warning("The memory store is empty outside 'dilemma run'; use --store redis or sqlite\n")
	}

	store, err := openStore(ctx, sc)
	if err != nil {
		return err
	}
	defer standings.CloseIfSupported(store)

	if runID == "" {
		return listRuns(ctx, store, criteria, sc.Namespace, opts.Output)
	}
	return getRun(ctx, store, runID, opts.Output)
}

func storeOverrides(base *config.StoreConfig, opts standingsOptions) *config.StoreConfig {
	sc := *base
	if opts.Store != "" {
		sc.Backend = opts.Store
	}
	if opts.RedisAddr != "" {
		sc.RedisAddr = opts.RedisAddr
	}
	if opts.Namespace != "" {
		sc.Namespace = opts.Namespace
	}
	return &sc
}

func listRuns(ctx context.Context, store standings.Store, criteria *standings.Criteria, namespace, output string) error {
	runs, err := store.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	runs = criteria.Filter(runs)

	switch output {
	case outputJSONL:
		return report.FormatRunsJSONL(printer.Stdout, runs)
	case outputJSON:
		if runs == nil {
			runs = []*standings.Run{}
		}
		return report.FormatJSON(printer.Stdout, runs)
	default:
		report.FormatRuns(printer.Stdout, runs, namespace)
		return nil
	}
}

func getRun(ctx context.Context, store standings.Store, shortID, output string) error {
	fullID, err := standings.ResolveRunID(ctx, store, shortID)
	if err != nil {
		var ambiguous *standings.AmbiguousError
		if errors.As(err, &ambiguous) {
			return printer.Error(
				"ambiguous run ID",
				standings.FormatAmbiguousError(ambiguous),
				nil,
			)
		}
		if standings.IsNotFound(err) {
			return printer.Error(
				fmt.Sprintf("run '%s' not found", shortID),
				"No stored run matches this ID.",
				[]string{"List stored runs:\n  dilemma standings"},
			)
		}
		return printer.Error("invalid run ID", err.Error(), nil)
	}

	run, err := store.GetRun(ctx, fullID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", fullID, err)
	}

	if output != outputDefault {
		return report.FormatJSON(printer.Stdout, run)
	}
	report.FormatStandings(printer.Stdout, run)
	return nil
}
