// Package metrics counts batch run outcomes and writes them as a Prometheus textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ragjudge/internal/judge"
)

// Run holds the counters of a single batch run on a private registry.
type Run struct {
	registry       *prometheus.Registry
	Questions      prometheus.Counter
	Verdicts       *prometheus.CounterVec
	Correct        *prometheus.CounterVec
	ProviderErrors *prometheus.CounterVec
	Cooldowns      prometheus.Counter
	Duration       prometheus.Gauge
}

// NewRun registers the run counters.
func NewRun() *Run {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Run{
		registry: registry,
		Questions: factory.NewCounter(prometheus.CounterOpts{
			Name: "ragjudge_questions_total",
			Help: "Questions processed in the run",
		}),
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ragjudge_verdicts_total",
			Help: "Judge verdicts by system, verdict and source",
		}, []string{"system", "verdict", "source"}),
		Correct: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ragjudge_correct_total",
			Help: "Answers counted correct by system",
		}, []string{"system"}),
		ProviderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ragjudge_provider_errors_total",
			Help: "Answer provider failures by system",
		}, []string{"system"}),
		Cooldowns: factory.NewCounter(prometheus.CounterOpts{
			Name: "ragjudge_cooldowns_total",
			Help: "Cooldown pauses taken",
		}),
		Duration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ragjudge_run_duration_seconds",
			Help: "Wall time of the run",
		}),
	}
}

// RecordQuestion counts one processed question.
func (m *Run) RecordQuestion() {
	if m == nil {
		return
	}
	m.Questions.Inc()
}

// RecordVerdict counts one judged answer.
func (m *Run) RecordVerdict(system string, v judge.Verdict, correct bool) {
	if m == nil {
		return
	}
	m.Verdicts.WithLabelValues(system, string(v.Label), string(v.Source)).Inc()
	if correct {
		m.Correct.WithLabelValues(system).Inc()
	}
}

// RecordProviderError counts a failed answer call.
func (m *Run) RecordProviderError(system string) {
	if m == nil {
		return
	}
	m.ProviderErrors.WithLabelValues(system).Inc()
}

// RecordCooldown counts one cooldown pause.
func (m *Run) RecordCooldown() {
	if m == nil {
		return
	}
	m.Cooldowns.Inc()
}

// RecordDuration sets the run wall time.
func (m *Run) RecordDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.Duration.Set(d.Seconds())
}

// WriteTextfile writes all counters in the Prometheus text exposition format.
func (m *Run) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
