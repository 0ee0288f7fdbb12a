package tournament

import (
	"time"

	"github.com/dyluth/dilemma/pkg/ipd"
	"github.com/prometheus/client_golang/prometheus"
)

// Metric namespace and subsystem.
const (
	metricsNamespace = "dilemma"
	metricsSubsystem = "tournament"
)

// Metrics receives tournament measurements.
type Metrics interface {
	ObserveMatch(result ipd.MatchResult, duration time.Duration)
	ObserveTournament(matches int, duration time.Duration)
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) ObserveMatch(ipd.MatchResult, time.Duration) {}
func (NoOpMetrics) ObserveTournament(int, time.Duration)        {}

// PrometheusMetrics exports tournament measurements.
//
//   - dilemma_tournament_matches_total: matches played
//   - dilemma_tournament_turns_total: turns played
//   - dilemma_tournament_actions_total: actions by strategy and action (C/D)
//   - dilemma_tournament_points_total: points awarded by strategy
//   - dilemma_tournament_match_duration_seconds: histogram of match wall time
//   - dilemma_tournament_last_duration_seconds: wall time of the last tournament
type PrometheusMetrics struct {
	matches       prometheus.Counter
	turns         prometheus.Counter
	actions       *prometheus.CounterVec
	points        *prometheus.CounterVec
	matchDuration prometheus.Histogram
	lastDuration  prometheus.Gauge
}

// NewPrometheusMetrics creates and registers the collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "matches_total",
			Help:      "Number of matches played.",
		}),
		turns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "turns_total",
			Help:      "Number of turns played.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "actions_total",
			Help:      "Actions taken, by strategy and action.",
		}, []string{"strategy", "action"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "points_total",
			Help:      "Points awarded, by strategy.",
		}, []string{"strategy"}),
		matchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "match_duration_seconds",
			Help:      "Wall time of a single match.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		lastDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "last_duration_seconds",
			Help:      "Wall time of the most recent tournament.",
		}),
	}

	for _, c := range []prometheus.Collector{m.matches, m.turns, m.actions, m.points, m.matchDuration, m.lastDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) ObserveMatch(result ipd.MatchResult, duration time.Duration) {
	m.matches.Inc()
	m.turns.Add(float64(len(result.Turns)))
	m.matchDuration.Observe(duration.Seconds())

	coopA, coopB := result.Cooperation()
	m.observeSide(result.A.Strategy, coopA, len(result.Turns)-coopA, result.ScoreA)
	m.observeSide(result.B.Strategy, coopB, len(result.Turns)-coopB, result.ScoreB)
}

func (m *PrometheusMetrics) observeSide(kind ipd.Kind, cooperated, defected, points int) {
	strategy := string(kind)
	m.actions.WithLabelValues(strategy, ipd.Cooperate.String()).Add(float64(cooperated))
	m.actions.WithLabelValues(strategy, ipd.Defect.String()).Add(float64(defected))
	if points > 0 {
		m.points.WithLabelValues(strategy).Add(float64(points))
	}
}

func (m *PrometheusMetrics) ObserveTournament(_ int, duration time.Duration) {
	m.lastDuration.Set(duration.Seconds())
}
