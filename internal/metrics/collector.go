// Package metrics counts what each parse run produced and exports it in the
// Prometheus text format, e.g. for the node_exporter textfile collector.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/audi70r/gitlog/internal/git"
)

const namespace = "gitlog"

// Collector holds the parse metrics.
type Collector struct {
	registry *prometheus.Registry

	runs          prometheus.Counter
	commits       prometheus.Counter
	tagged        prometheus.Counter
	fixes         prometheus.Counter
	withStats     prometheus.Counter
	merges        *prometheus.CounterVec
	errors        *prometheus.CounterVec
	parseDuration prometheus.Histogram
	lastRun       prometheus.Gauge
}

// NewCollector registers the parse metrics on registry. A nil registry gets
// a fresh one.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_runs_total",
			Help:      "Number of log parse runs.",
		}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_parsed_total",
			Help:      "Commits returned by the parser.",
		}),
		tagged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tagged_commits_total",
			Help:      "Commits carrying a version tag.",
		}),
		fixes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issue_references_total",
			Help:      "Issue references found in commit messages.",
		}),
		withStats: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_with_stats_total",
			Help:      "Commits with a --shortstat summary.",
		}),
		merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Merge commits by convention.",
		}, []string{"style"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Failed parse runs by error kind.",
		}, []string{"kind"}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Time spent fetching and parsing the log.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last parse run.",
		}),
	}

	registry.MustRegister(c.runs, c.commits, c.tagged, c.fixes, c.withStats,
		c.merges, c.errors, c.parseDuration, c.lastRun)
	return c
}

// Observe records a successful run.
func (c *Collector) Observe(commits []*git.Commit, duration time.Duration) {
	c.runs.Inc()
	c.parseDuration.Observe(duration.Seconds())
	c.lastRun.SetToCurrentTime()

	for _, commit := range commits {
		c.commits.Inc()
		if commit.Tag != nil {
			c.tagged.Inc()
		}
		if commit.Stats != nil {
			c.withStats.Inc()
		}
		if commit.Merge != nil {
			c.merges.WithLabelValues(commit.Merge.Style.String()).Inc()
		}
		c.fixes.Add(float64(len(commit.Fixes)))
	}
}

// RecordError records a failed run.
func (c *Collector) RecordError(err error) {
	c.runs.Inc()
	c.lastRun.SetToCurrentTime()
	c.errors.WithLabelValues(errorKind(err)).Inc()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, git.ErrMalformedCommit):
		return "malformed_commit"
	case errors.Is(err, git.ErrStartingCommitNotFound):
		return "starting_commit_not_found"
	case errors.Is(err, git.ErrInvalidPattern):
		return "invalid_pattern"
	default:
		return "fetch"
	}
}

// WriteTextfile writes every registered metric to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
