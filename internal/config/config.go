package config

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/dyluth/dilemma/internal/standings"
	"github.com/dyluth/dilemma/pkg/ipd"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Validate
const (
	DefaultTurns     = 200
	DefaultNamespace = "default"
	DefaultRedisAddr = "localhost:6379"
	DefaultSQLite    = "dilemma.db"
)

// Config represents the top-level dilemma.yml configuration
type Config struct {
	Version    string            `yaml:"version"`
	Tournament *TournamentConfig `yaml:"tournament,omitempty"`
	Payoff     *ipd.Matrix       `yaml:"payoff,omitempty"` // Defaults to the classic matrix
	Population []AgentConfig     `yaml:"population"`
	Store      *StoreConfig      `yaml:"store,omitempty"`
}

// TournamentConfig specifies how matches are played
type TournamentConfig struct {
	Turns       int     `yaml:"turns,omitempty"`       // Turns per match (default 200)
	Seed        *uint64 `yaml:"seed,omitempty"`        // Omit for a time-based seed
	Concurrency int     `yaml:"concurrency,omitempty"` // Max concurrent matches (default 1)
}

// AgentConfig declares one or more agents running the same strategy
type AgentConfig struct {
	Strategy string `yaml:"strategy"`           // Registry name, e.g. "Tit for Tat"
	Name     string `yaml:"name,omitempty"`     // Display label (default: strategy name)
	Replicas *int   `yaml:"replicas,omitempty"` // Number of agents (default 1)
}

// StoreConfig specifies where finished runs are persisted
type StoreConfig struct {
	Backend    string `yaml:"backend,omitempty"` // memory, redis or sqlite
	RedisAddr  string `yaml:"redis_addr,omitempty"`
	Namespace  string `yaml:"namespace,omitempty"`
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// Validate performs strict validation and fills in defaults
func (c *Config) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Tournament == nil {
		c.Tournament = &TournamentConfig{}
	}
	if c.Tournament.Turns == 0 {
		c.Tournament.Turns = DefaultTurns
	}
	if c.Tournament.Turns < 1 {
		return fmt.Errorf("tournament.turns must be >= 1, got %d", c.Tournament.Turns)
	}
	if c.Tournament.Concurrency == 0 {
		c.Tournament.Concurrency = 1
	}
	if c.Tournament.Concurrency < 1 {
		return fmt.Errorf("tournament.concurrency must be >= 1, got %d", c.Tournament.Concurrency)
	}

	if c.Payoff == nil {
		classic := ipd.ClassicMatrix
		c.Payoff = &classic
	}
	if err := c.Payoff.Validate(); err != nil {
		return err
	}

	// Required: at least two agents to have a single match
	if len(c.Population) == 0 {
		return fmt.Errorf("no agents defined in population")
	}
	for i := range c.Population {
		if err := c.Population[i].Validate(i); err != nil {
			return err
		}
	}
	if c.AgentCount() < 2 {
		return fmt.Errorf("population must contain at least 2 agents, got %d", c.AgentCount())
	}

	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	return c.Store.Validate()
}

// Validate checks a single population entry
func (a *AgentConfig) Validate(index int) error {
	if a.Strategy == "" {
		return fmt.Errorf("population[%d]: strategy is required", index)
	}

	d, err := ipd.Lookup(a.Strategy)
	if err != nil {
		return fmt.Errorf("population[%d]: %w", index, err)
	}
	if d.Unspecified {
		return fmt.Errorf("population[%d]: %w: %s", index, ipd.ErrUnspecifiedStrategy, d.Name)
	}

	if a.Replicas == nil {
		one := 1
		a.Replicas = &one
	}
	if *a.Replicas < 1 {
		return fmt.Errorf("population[%d] (%s): replicas must be >= 1, got %d", index, a.Strategy, *a.Replicas)
	}
	return nil
}

// Validate checks the store backend and applies its defaults
func (s *StoreConfig) Validate() error {
	switch s.Backend {
	case "":
		s.Backend = "memory"
	case "memory":
	case "redis":
		if s.RedisAddr == "" {
			s.RedisAddr = DefaultRedisAddr
		}
	case "sqlite":
		if s.SQLitePath == "" {
			s.SQLitePath = DefaultSQLite
		}
	default:
		return fmt.Errorf("invalid store.backend: %s (must be 'memory', 'redis' or 'sqlite')", s.Backend)
	}

	if s.Namespace == "" {
		s.Namespace = DefaultNamespace
	}
	return nil
}

// Options converts the store section for standings.NewStore
func (s *StoreConfig) Options() standings.Options {
	return standings.Options{
		Backend:    s.Backend,
		RedisAddr:  s.RedisAddr,
		Namespace:  s.Namespace,
		SQLitePath: s.SQLitePath,
	}
}

// AgentCount returns the population size after replicas are expanded
func (c *Config) AgentCount() int {
	total := 0
	for _, a := range c.Population {
		if a.Replicas == nil {
			total++
			continue
		}
		total += *a.Replicas
	}
	return total
}

// BuildPopulation creates the agents in declaration order. Every agent gets
// its own random source derived from seed and its position, so a seed fully
// determines a run. Replicated agents are labelled "name-1", "name-2", ...
func (c *Config) BuildPopulation(seed uint64) (*ipd.Population, error) {
	var agents []*ipd.Agent
	for _, entry := range c.Population {
		replicas := 1
		if entry.Replicas != nil {
			replicas = *entry.Replicas
		}

		for r := 1; r <= replicas; r++ {
			label := entry.Name
			if label != "" && replicas > 1 {
				label = fmt.Sprintf("%s-%d", entry.Name, r)
			}

			rng := rand.New(rand.NewPCG(seed, uint64(len(agents))))
			agent, err := ipd.NewAgentByName(entry.Strategy, label, rng)
			if err != nil {
				return nil, fmt.Errorf("failed to create agent for %s: %w", entry.Strategy, err)
			}
			agents = append(agents, agent)
		}
	}
	return ipd.NewPopulation(agents...)
}

// Default returns a ready-to-run configuration with one agent per strategy
func Default() *Config {
	cfg := &Config{Version: "1.0"}
	for _, name := range ipd.Names() {
		cfg.Population = append(cfg.Population, AgentConfig{Strategy: name})
	}
	// Validate only fills defaults here; every registered name is valid
	_ = cfg.Validate()
	return cfg
}

// FromStrategies builds a configuration from a list of strategy names
func FromStrategies(names []string) (*Config, error) {
	cfg := &Config{Version: "1.0"}
	for _, name := range names {
		cfg.Population = append(cfg.Population, AgentConfig{Strategy: name})
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load reads and validates dilemma.yml from the specified path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
