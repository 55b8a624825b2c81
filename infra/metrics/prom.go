// Package metrics provides Prometheus-backed implementations of the core
// metrics sink.
package metrics

import (
	coremetrics "github.com/jbaptistec/shiftplan/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records optimization runs in Prometheus metrics.
type PromSink struct {
	scheduled  *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	violations *prometheus.CounterVec
	score      *prometheus.GaugeVec
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	scheduled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_jobs_scheduled_total",
		Help: "Total number of jobs placed by each policy",
	}, []string{"policy"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_jobs_dropped_total",
		Help: "Total number of jobs dropped by each policy for lack of a compatible or available machine",
	}, []string{"policy"})
	violations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_violations_total",
		Help: "Total number of constraint violations found during validation",
	}, []string{"policy"})
	score := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule_weighted_score",
		Help: "Weighted KPI score of the last schedule produced by each policy (lower is better)",
	}, []string{"policy"})

	for _, c := range []*prometheus.CounterVec{scheduled, dropped, violations} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			existing := are.ExistingCollector.(*prometheus.CounterVec)
			switch c {
			case scheduled:
				scheduled = existing
			case dropped:
				dropped = existing
			case violations:
				violations = existing
			}
		}
	}
	if err := reg.Register(score); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			score = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{scheduled: scheduled, dropped: dropped, violations: violations, score: score}, nil
}

// RecordRun increments the scheduled and dropped counters for the policy.
func (s *PromSink) RecordRun(policy string, scheduled, dropped int) error {
	s.scheduled.WithLabelValues(policy).Add(float64(scheduled))
	s.dropped.WithLabelValues(policy).Add(float64(dropped))
	return nil
}

// RecordValidation increments the violation counter for the policy.
func (s *PromSink) RecordValidation(policy string, violations int) error {
	s.violations.WithLabelValues(policy).Add(float64(violations))
	return nil
}

// RecordScore sets the score gauge for the policy.
func (s *PromSink) RecordScore(policy string, score float64) error {
	s.score.WithLabelValues(policy).Set(score)
	return nil
}
