package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/dilemma/internal/printer"
	"github.com/dyluth/dilemma/internal/standings"
	"github.com/dyluth/dilemma/internal/watch"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	watchRedisAddr    string
	watchNamespace    string
	watchOutputFormat string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream tournament runs as they finish",
	Long: `Stream tournament runs as they are saved to the Redis store.

Every 'dilemma run --store redis' in the same namespace publishes its record
when it finishes; watch prints one line per run until interrupted.

Output Formats:
  default - One human-readable line per run
  json    - Line-delimited JSON run records

Examples:
  # Watch the default namespace
  dilemma watch --redis-addr localhost:6379

  # Export runs as JSON
  dilemma watch --output=json > runs.jsonl`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchRedisAddr, "redis-addr", "", "Redis address (default from config)")
	watchCmd.Flags().StringVar(&watchNamespace, "namespace", "", "Store namespace (default from config)")
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", outputDefault, "Output format (default or json)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var outputFormat watch.OutputFormat
	switch watchOutputFormat {
	case outputDefault:
		outputFormat = watch.OutputFormatDefault
	case outputJSON:
		outputFormat = watch.OutputFormatJSON
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	sc := storeOverrides(cfg.Store, standingsOptions{
		Store:     "redis",
		RedisAddr: watchRedisAddr,
		Namespace: watchNamespace,
	})
	if err := sc.Validate(); err != nil {
		return printer.Error("invalid store settings", err.Error(), nil)
	}

	store, err := standings.NewRedisStore(&redis.Options{Addr: sc.RedisAddr}, sc.Namespace)
	if err != nil {
		return fmt.Errorf("failed to create Redis store: %w", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		return printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", sc.RedisAddr),
			[][2]string{{"Namespace", sc.Namespace}},
			[]string{"Start Redis or pass --redis-addr"},
		)
	}

	sub := store.SubscribeRuns(ctx)
	defer sub.Close()

	if outputFormat == watch.OutputFormatDefault {
		printer.Step("Watching namespace '%s' on %s (Ctrl+C to stop)\n", sc.Namespace, sc.RedisAddr)
	}
	_, err = watch.StreamRuns(ctx, sub.Channel(), outputFormat, printer.Stdout)
	return err
}
