// Package pipeline wires the scheduling stages into one fixed linear
// sequence: run each policy, compute KPIs, validate, select the best valid
// candidate. There is no branching and no retry loop; the sequence is the
// same on every invocation.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jbaptistec/shiftplan/core/engine"
	"github.com/jbaptistec/shiftplan/core/logger"
	"github.com/jbaptistec/shiftplan/core/metrics"
	"github.com/jbaptistec/shiftplan/core/model"
	"github.com/jbaptistec/shiftplan/core/validate"
	"github.com/jbaptistec/shiftplan/internal/eventbus"
)

// Statuses reported by Optimize.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Config assembles the pipeline collaborators. Zero values fall back to
// no-op implementations, so a bare Config{} is usable.
type Config struct {
	Logger    logger.Logger
	Sink      metrics.Sink
	Bus       *eventbus.Bus
	Explainer Explainer
	// Policies are run in order; defaults to batching then rebalance.
	Policies []engine.Policy
}

// Pipeline runs the fixed optimization sequence.
type Pipeline struct {
	log       logger.Logger
	sink      metrics.Sink
	bus       *eventbus.Bus
	explainer Explainer
	policies  []engine.Policy
}

// CandidateReport captures one policy's full outcome.
type CandidateReport struct {
	Label      string
	Run        engine.Result
	Validation validate.Result
	Score      float64
}

// Result is the outcome of one Optimize call.
type Result struct {
	Status      string
	Schedule    *model.Schedule // nil when Status is failed
	Label       string
	Candidates  []CandidateReport
	Explanation string
	Elapsed     time.Duration
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// New builds a pipeline from the config.
func New(cfg Config) *Pipeline {
	p := &Pipeline{
		log:       cfg.Logger,
		sink:      cfg.Sink,
		bus:       cfg.Bus,
		explainer: cfg.Explainer,
		policies:  cfg.Policies,
	}
	if p.log == nil {
		p.log = nopLogger{}
	}
	if p.sink == nil {
		p.sink = metrics.NopSink{}
	}
	if p.explainer == nil {
		p.explainer = NopExplainer{}
	}
	if len(p.policies) == 0 {
		p.policies = []engine.Policy{engine.BatchingPolicy{}, engine.RebalancePolicy{}}
	}
	return p
}

// Optimize runs every policy on the inputs, validates the candidates and
// selects the lowest-scoring valid one. When no candidate is valid the
// result carries StatusFailed and the combined violation text; that is a
// normal outcome, not an error.
func (p *Pipeline) Optimize(ctx context.Context, jobs []model.Job, machines []model.Machine, c model.Constraint) *Result {
	start := time.Now()
	res := &Result{Status: StatusFailed}

	var candidates []engine.Candidate
	for _, pol := range p.policies {
		run := engine.New(pol, p.log).Run(jobs, machines, c)
		run.Schedule.ComputeKPI(machines, c)
		p.publish(eventbus.StageEvent{Stage: "policy_run", Policy: pol.Name(), Detail: run.Summary})
		if err := p.sink.RecordRun(pol.Name(), run.Scheduled, run.Dropped); err != nil {
			p.log.Warnf("record run: %v", err)
		}

		v := validate.Validate(run.Schedule, jobs, machines, c)
		p.publish(eventbus.StageEvent{Stage: "validation", Policy: pol.Name(),
			Detail: fmt.Sprintf("%d violation(s)", len(v.Violations))})
		if err := p.sink.RecordValidation(pol.Name(), len(v.Violations)); err != nil {
			p.log.Warnf("record validation: %v", err)
		}

		score := run.Schedule.KPI.WeightedScore(c)
		if err := p.sink.RecordScore(pol.Name(), score); err != nil {
			p.log.Warnf("record score: %v", err)
		}

		res.Candidates = append(res.Candidates, CandidateReport{
			Label:      pol.Name(),
			Run:        run,
			Validation: v,
			Score:      score,
		})
		if v.Valid {
			candidates = append(candidates, engine.Candidate{Schedule: run.Schedule, Label: pol.Name()})
		}
	}

	if len(candidates) == 0 {
		res.Explanation = p.failureText(res.Candidates)
		res.Elapsed = time.Since(start)
		p.publish(eventbus.StageEvent{Stage: "selection", Detail: "no valid candidate"})
		p.log.Warnf("optimization failed: no valid candidate among %d policies", len(p.policies))
		return res
	}

	best, err := engine.SelectBest(candidates, c)
	if err != nil {
		// Unreachable with KPIs computed above, but keep the failure path
		// uniform.
		res.Explanation = err.Error()
		res.Elapsed = time.Since(start)
		return res
	}
	p.publish(eventbus.StageEvent{Stage: "selection", Policy: best.Label,
		Detail: fmt.Sprintf("score %.1f", best.Schedule.KPI.WeightedScore(c))})

	summary := p.selectionSummary(best, res.Candidates, c)
	explanation, err := p.explainer.Explain(ctx, summary)
	if err != nil {
		p.log.Warnf("explainer failed, using plain summary: %v", err)
		explanation = summary
	}
	best.Schedule.Explanation = explanation

	res.Status = StatusCompleted
	res.Schedule = best.Schedule
	res.Label = best.Label
	res.Explanation = explanation
	res.Elapsed = time.Since(start)
	p.log.Infof("optimization completed in %s: %s selected", res.Elapsed.Round(time.Millisecond), best.Label)
	return res
}

func (p *Pipeline) publish(e eventbus.StageEvent) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}

// selectionSummary renders the candidate comparison handed to the explainer
// and used as the fallback explanation.
func (p *Pipeline) selectionSummary(best engine.Candidate, reports []CandidateReport, c model.Constraint) string {
	var b strings.Builder
	b.WriteString("OPTIMIZATION RESULT\n\nCandidates (lower score is better):\n")
	for i, r := range reports {
		kpi := r.Run.Schedule.KPI
		fmt.Fprintf(&b, "%d. %s: score=%.1f, tardiness=%dmin, setup=%dmin (%d switches), imbalance=%.1f%%, violations=%d\n",
			i+1, r.Label, r.Score, kpi.TotalTardiness, kpi.TotalSetupTime,
			kpi.NumSetupSwitches, kpi.UtilizationImbalance, kpi.NumViolations)
	}
	kpi := best.Schedule.KPI
	fmt.Fprintf(&b, "\nSelected: %s (score %.1f)\n", best.Label, kpi.WeightedScore(c))
	fmt.Fprintf(&b, "Utilization: %.1f%% max vs %.1f%% min\n", kpi.MaxMachineUtilization, kpi.MinMachineUtilization)
	return b.String()
}

func (p *Pipeline) failureText(reports []CandidateReport) string {
	var b strings.Builder
	b.WriteString("OPTIMIZATION FAILED\n\nAll candidate schedules have constraint violations:\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "\n%s violations:\n", r.Label)
		for _, v := range r.Validation.Violations {
			fmt.Fprintf(&b, "- %s\n", v)
		}
	}
	b.WriteString("\nAdjust constraints or job requirements and retry.")
	return b.String()
}
