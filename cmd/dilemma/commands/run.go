package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/dilemma/internal/config"
	"github.com/dyluth/dilemma/internal/printer"
	"github.com/dyluth/dilemma/internal/report"
	"github.com/dyluth/dilemma/internal/standings"
	"github.com/dyluth/dilemma/internal/tournament"
	"github.com/dyluth/dilemma/pkg/ipd"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// Output formats shared by run and standings
const (
	outputDefault = "default"
	outputJSONL   = "jsonl"
	outputJSON    = "json"
)

// runOptions collects everything that can override dilemma.yml
type runOptions struct {
	ConfigPath     string
	ConfigExplicit bool
	Agents         []string
	Turns          int // 0 keeps the configured value
	Seed           uint64
	SeedSet        bool
	Concurrency    int // 0 keeps the configured value
	Store          string
	RedisAddr      string
	Namespace      string
	Output         string
	ShowMatches    bool
	Verbose        bool
	MetricsAddr    string
}

var runFlags runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a round-robin tournament",
	Long: `Play a round-robin tournament: every agent meets every other agent exactly
once for a fixed number of turns, and scores accumulate across matches.

The population, payoff matrix and store come from dilemma.yml. Without a
config file one agent per strategy is used. Flags override file values.

Output Formats:
  default - Standings table (add --matches for the per-match log)
  jsonl   - One JSON object per match with both move histories
  json    - The stored run record

Examples:
  # Run the default population for 100 turns per match
  dilemma run --turns 100

  # A quick head-to-head with a fixed seed
  dilemma run --agents "Tit for Tat,Random,Grudger" --seed 7

  # Play concurrently and keep the result in Redis
  dilemma run --concurrency 8 --store redis --redis-addr localhost:6379

  # Stream matches to jq
  dilemma run --output jsonl | jq 'select(.score_a > .score_b)'`,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringSliceVar(&runFlags.Agents, "agents", nil, "Comma-separated strategy names (replaces the configured population)")
	f.IntVar(&runFlags.Turns, "turns", 0, "Turns per match (overrides config)")
	f.Uint64Var(&runFlags.Seed, "seed", 0, "Seed for every agent's random source (default: time-based)")
	f.IntVar(&runFlags.Concurrency, "concurrency", 0, "Max matches played at once (overrides config)")
	f.StringVar(&runFlags.Store, "store", "", "Store backend: memory, redis or sqlite (overrides config)")
	f.StringVar(&runFlags.RedisAddr, "redis-addr", "", "Redis address for the redis store")
	f.StringVar(&runFlags.Namespace, "namespace", "", "Store namespace")
	f.StringVarP(&runFlags.Output, "output", "o", outputDefault, "Output format: default, jsonl or json")
	f.BoolVar(&runFlags.ShowMatches, "matches", false, "Include the per-match log in default output")
	f.BoolVarP(&runFlags.Verbose, "verbose", "v", false, "Log tournament events to stderr")
	f.StringVar(&runFlags.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address until interrupted")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := runFlags
	opts.ConfigPath = configPath
	opts.ConfigExplicit = cmd.Flags().Changed("config")
	opts.SeedSet = cmd.Flags().Changed("seed")

	_, err := executeRun(ctx, opts)
	return err
}

// executeRun plays and stores one tournament. It returns the stored record.
func executeRun(ctx context.Context, opts runOptions) (*standings.Run, error) {
	switch opts.Output {
	case outputDefault, outputJSONL, outputJSON:
	default:
		return nil, printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", opts.Output),
			[]string{"Valid formats: default, jsonl, json"},
		)
	}

	cfg, err := loadConfig(opts.ConfigPath, opts.ConfigExplicit)
	if err != nil {
		return nil, err
	}
	if err := applyRunOverrides(cfg, opts); err != nil {
		if ipd.IsUnknownStrategy(err) || errors.Is(err, ipd.ErrUnspecifiedStrategy) {
			return nil, printer.Error(
				"unknown strategy",
				err.Error(),
				[]string{"List the available strategies:\n  dilemma strategies"},
			)
		}
		return nil, printer.Error("invalid tournament settings", err.Error(), nil)
	}

	seed := uint64(time.Now().UnixNano())
	switch {
	case opts.SeedSet:
		seed = opts.Seed
	case cfg.Tournament.Seed != nil:
		seed = *cfg.Tournament.Seed
	}

	pop, err := cfg.BuildPopulation(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to build population: %w", err)
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	defer standings.CloseIfSupported(store)

	var metrics tournament.Metrics
	var metricsServer *http.Server
	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		pm, err := tournament.NewPrometheusMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics = pm

		metricsServer, err = serveMetrics(opts.MetricsAddr, reg)
		if err != nil {
			return nil, printer.Error(
				"metrics server failed",
				err.Error(),
				[]string{"Choose a free address with --metrics-addr"},
			)
		}
		defer shutdownServer(metricsServer)
	}

	var logger *log.Logger
	if opts.Verbose {
		logger = log.New(printer.Stderr, "", log.LstdFlags)
	}

	engine := tournament.NewEngine(tournament.Options{
		Turns:       cfg.Tournament.Turns,
		Payoff:      cfg.Payoff.Func(),
		Concurrency: cfg.Tournament.Concurrency,
		Logger:      logger,
		Metrics:     metrics,
	})

	if opts.Output == outputDefault {
		n := pop.Len()
		printer.Step("Playing %d matches between %d agents, %d turns each (run %s)\n",
			n*(n-1)/2, n, cfg.Tournament.Turns, engine.RunID())
	}

	result, err := engine.Run(ctx, pop)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, printer.Error("tournament interrupted", "The run was cancelled before every match was played.", nil)
		}
		return nil, fmt.Errorf("tournament failed: %w", err)
	}

	record := result.Record(seed, *cfg.Payoff)
	if err := store.SaveRun(ctx, record); err != nil {
		return nil, printer.ErrorWithContext(
			"failed to save run",
			err.Error(),
			[][2]string{{"Run", record.ID}, {"Store", cfg.Store.Backend}},
			nil,
		)
	}

	if err := writeRunOutput(opts, result, record); err != nil {
		return nil, err
	}

	if metricsServer != nil {
		printer.Info("Serving metrics on http://%s/metrics (Ctrl+C to stop)\n", metricsServer.Addr)
		<-ctx.Done()
	}

	return record, nil
}

// applyRunOverrides merges command-line values into cfg and revalidates it
func applyRunOverrides(cfg *config.Config, opts runOptions) error {
	if len(opts.Agents) > 0 {
		cfg.Population = nil
		for _, name := range opts.Agents {
			cfg.Population = append(cfg.Population, config.AgentConfig{Strategy: name})
		}
	}
	if opts.Turns != 0 {
		cfg.Tournament.Turns = opts.Turns
	}
	if opts.Concurrency != 0 {
		cfg.Tournament.Concurrency = opts.Concurrency
	}
	if opts.Store != "" {
		cfg.Store.Backend = opts.Store
	}
	if opts.RedisAddr != "" {
		cfg.Store.RedisAddr = opts.RedisAddr
	}
	if opts.Namespace != "" {
		cfg.Store.Namespace = opts.Namespace
	}
	return cfg.Validate()
}

// openStore creates and initialises the configured backend
func openStore(ctx context.Context, sc *config.StoreConfig) (standings.Store, error) {
	store, err := standings.NewStore(sc.Options())
	if err != nil {
		return nil, printer.Error(
			"store unavailable",
			err.Error(),
			[]string{"Use the memory store:\n  --store memory"},
		)
	}

	if err := store.Init(ctx); err != nil {
		standings.CloseIfSupported(store)
		return nil, printer.ErrorWithContext(
			"store unavailable",
			err.Error(),
			[][2]string{{"Backend", sc.Backend}},
			[]string{
				"Check that the backend is reachable",
				"Use the memory store:\n     --store memory",
			},
		)
	}
	return store, nil
}

func writeRunOutput(opts runOptions, result *tournament.Result, record *standings.Run) error {
	switch opts.Output {
	case outputJSONL:
		return report.FormatJSONL(printer.Stdout, result.Matches)
	case outputJSON:
		return report.FormatJSON(printer.Stdout, record)
	}

	if opts.ShowMatches {
		printer.Info("\n")
		report.FormatMatches(printer.Stdout, result.Matches)
	}
	printer.Info("\n")
	report.FormatStandings(printer.Stdout, record)
	printer.Info("\n")
	printer.Success("Saved run %s in %s\n", record.ID, result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	return nil
}

// serveMetrics binds addr before returning so a busy port is reported up front
func serveMetrics(addr string, reg *prometheus.Registry) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[Metrics] Server error: %v", err)
		}
	}()
	return srv, nil
}

func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Metrics] Shutdown error: %v", err)
	}
}
