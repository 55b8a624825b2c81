package engine

import (
	"slices"
	"sort"

	"github.com/jbaptistec/shiftplan/core/model"
)

// Policy supplies the swappable pieces of the greedy assignment skeleton:
// the job ordering, the machine preference among compatible machines, and
// whether downtime windows are resolved at all.
type Policy interface {
	Name() string
	// OrderJobs returns the jobs in assignment order. The input is never
	// mutated.
	OrderJobs(jobs []model.Job) []model.Job
	// CandidateMachines orders the compatible machines to try for one job.
	// loads carries the cumulative minutes committed to each machine so far
	// in this run.
	CandidateMachines(compatible []model.Machine, loads map[string]int) []model.Machine
	// AvoidsDowntime reports whether candidate windows are checked against
	// machine downtime.
	AvoidsDowntime() bool
}

// BatchingPolicy groups jobs by product type to minimize changeovers.
// Groups keep first-seen order; within a group rush jobs go first, then
// earlier due times. Machines are tried least-loaded first.
type BatchingPolicy struct{}

func (BatchingPolicy) Name() string { return "batching" }

func (BatchingPolicy) OrderJobs(jobs []model.Job) []model.Job {
	var groupOrder []string
	groups := make(map[string][]model.Job)
	for _, j := range jobs {
		if _, ok := groups[j.ProductType]; !ok {
			groupOrder = append(groupOrder, j.ProductType)
		}
		groups[j.ProductType] = append(groups[j.ProductType], j)
	}
	out := make([]model.Job, 0, len(jobs))
	for _, p := range groupOrder {
		g := groups[p]
		sort.SliceStable(g, func(i, k int) bool {
			if g[i].IsRush() != g[k].IsRush() {
				return g[i].IsRush()
			}
			return g[i].DueTime < g[k].DueTime
		})
		out = append(out, g...)
	}
	return out
}

func (BatchingPolicy) CandidateMachines(compatible []model.Machine, loads map[string]int) []model.Machine {
	return leastLoaded(compatible, loads)
}

func (BatchingPolicy) AvoidsDowntime() bool { return true }

// RebalancePolicy relieves bottlenecks by spreading load: rush jobs first,
// then longest processing time first, each on the least-loaded compatible
// machine.
type RebalancePolicy struct{}

func (RebalancePolicy) Name() string { return "rebalance" }

func (RebalancePolicy) OrderJobs(jobs []model.Job) []model.Job {
	out := slices.Clone(jobs)
	sort.SliceStable(out, func(i, k int) bool {
		if out[i].IsRush() != out[k].IsRush() {
			return out[i].IsRush()
		}
		return out[i].ProcessingTime > out[k].ProcessingTime
	})
	return out
}

func (RebalancePolicy) CandidateMachines(compatible []model.Machine, loads map[string]int) []model.Machine {
	return leastLoaded(compatible, loads)
}

func (RebalancePolicy) AvoidsDowntime() bool { return true }

// BaselinePolicy is the naive FIFO reference: rush jobs first, then job id
// order, always on the first compatible machine. Downtime is ignored
// entirely, so baseline schedules may collide with maintenance windows.
type BaselinePolicy struct{}

func (BaselinePolicy) Name() string { return "baseline" }

func (BaselinePolicy) OrderJobs(jobs []model.Job) []model.Job {
	out := slices.Clone(jobs)
	sort.SliceStable(out, func(i, k int) bool {
		if out[i].IsRush() != out[k].IsRush() {
			return out[i].IsRush()
		}
		return out[i].ID < out[k].ID
	})
	return out
}

func (BaselinePolicy) CandidateMachines(compatible []model.Machine, _ map[string]int) []model.Machine {
	// No load comparison: only the first compatible machine is ever tried.
	return compatible[:1]
}

func (BaselinePolicy) AvoidsDowntime() bool { return false }

func leastLoaded(compatible []model.Machine, loads map[string]int) []model.Machine {
	out := slices.Clone(compatible)
	sort.SliceStable(out, func(i, k int) bool {
		return loads[out[i].ID] < loads[out[k].ID]
	})
	return out
}
