// Package metrics defines the sink interface used to record optimization
// runs. Implementations live under infra/metrics; NopSink is the default
// when no sink is configured.
package metrics

// Sink records scheduling outcomes. The engine itself never calls a sink;
// only the pipeline does.
type Sink interface {
	// RecordRun records one policy run with its scheduled and dropped
	// job counts.
	RecordRun(policy string, scheduled, dropped int) error
	// RecordValidation records the violation count found for one policy's
	// schedule.
	RecordValidation(policy string, violations int) error
	// RecordScore records the weighted KPI score of one policy's schedule.
	RecordScore(policy string, score float64) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordRun(string, int, int) error   { return nil }
func (NopSink) RecordValidation(string, int) error { return nil }
func (NopSink) RecordScore(string, float64) error  { return nil }
