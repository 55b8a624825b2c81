package engine

import (
	"fmt"

	"github.com/jbaptistec/shiftplan/core/logger"
	"github.com/jbaptistec/shiftplan/core/model"
)

// Engine runs one greedy, single-pass assignment with a given policy. A
// committed assignment is never revisited and there is no backtracking.
// Each run allocates fresh per-machine state, so an Engine may be reused
// and runs are deterministic for deterministic inputs.
type Engine struct {
	policy Policy
	log    logger.Logger
}

// Result reports one assignment run. Jobs without any compatible or
// available machine are dropped silently; the only trace is the
// Scheduled/Total counts and the summary text.
type Result struct {
	Schedule  *model.Schedule
	Policy    string
	Total     int
	Scheduled int
	Dropped   int
	Summary   string
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// New builds an engine for the policy. A nil logger is replaced with a
// no-op logger.
func New(p Policy, log logger.Logger) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{policy: p, log: log}
}

// Run assigns the jobs to the machines under the constraint and returns the
// resulting schedule. Inputs are treated as read-only.
func (e *Engine) Run(jobs []model.Job, machines []model.Machine, c model.Constraint) Result {
	ordered := e.policy.OrderJobs(jobs)

	cursor := make(map[string]model.Clock, len(machines))
	product := make(map[string]string, len(machines))
	loads := make(map[string]int, len(machines))
	for _, m := range machines {
		cursor[m.ID] = c.ShiftStart
	}

	sched := model.NewSchedule()
	sched.CreatedBy = e.policy.Name()
	scheduled := 0

	for _, job := range ordered {
		compatible := compatibleMachines(job, machines)
		if len(compatible) == 0 {
			e.log.Debugf("job %s dropped: no compatible machine for %s", job.ID, job.ProductType)
			continue
		}

		assigned := false
		for _, m := range e.policy.CandidateMachines(compatible, loads) {
			setup := 0
			if prev := product[m.ID]; prev != "" {
				setup = c.SetupTime(prev, job.ProductType)
			}

			start, end, ok := e.placeWindow(m, cursor, setup, job.ProcessingTime)
			if !ok {
				continue
			}

			sched.Add(model.JobAssignment{
				Job:             job,
				MachineID:       m.ID,
				Start:           start,
				End:             end,
				SetupTimeBefore: setup,
			})
			cursor[m.ID] = end
			product[m.ID] = job.ProductType
			loads[m.ID] += job.ProcessingTime + setup
			scheduled++
			assigned = true
			break
		}
		if !assigned {
			e.log.Debugf("job %s dropped: no machine available after downtime resolution", job.ID)
		}
	}

	res := Result{
		Schedule:  sched,
		Policy:    e.policy.Name(),
		Total:     len(jobs),
		Scheduled: scheduled,
		Dropped:   len(jobs) - scheduled,
	}
	res.Summary = fmt.Sprintf("%s: scheduled %d/%d jobs (%d dropped) on %d machine(s)",
		e.policy.Name(), res.Scheduled, res.Total, res.Dropped, len(sched.MachineIDs()))
	e.log.Infof("%s", res.Summary)
	return res
}

// placeWindow computes the candidate [start,end) window from the machine's
// cursor and resolves downtime when the policy requires it. On the first
// overlap the cursor is advanced past the downtime and the window is
// recomputed once; if it still overlaps the machine is rejected for this
// job. The advanced cursor is kept either way.
func (e *Engine) placeWindow(m model.Machine, cursor map[string]model.Clock, setup, processing int) (model.Clock, model.Clock, bool) {
	startMin := cursor[m.ID].Minutes() + setup
	start := model.ClampClock(startMin)
	end := model.ClampClock(startMin + processing)

	if !e.policy.AvoidsDowntime() {
		return start, end, true
	}

	conflict := false
	for _, d := range m.Downtime {
		if d.Overlaps(start, end) {
			conflict = true
			cursor[m.ID] = d.End
			break
		}
	}
	if !conflict {
		return start, end, true
	}

	// Single retry from the post-downtime cursor.
	startMin = cursor[m.ID].Minutes() + setup
	start = model.ClampClock(startMin)
	end = model.ClampClock(startMin + processing)
	for _, d := range m.Downtime {
		if d.Overlaps(start, end) {
			return start, end, false
		}
	}
	return start, end, true
}

// compatibleMachines returns the machines that both list the job's product
// type and appear in the job's machine options, in machine-list order.
func compatibleMachines(job model.Job, machines []model.Machine) []model.Machine {
	var out []model.Machine
	for _, m := range machines {
		if m.CanProduce(job.ProductType) && job.CanRunOn(m.ID) {
			out = append(out, m)
		}
	}
	return out
}
