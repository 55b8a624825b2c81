package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbaptistec/shiftplan/core/model"
)

func job(t *testing.T, id, product string, proc int, due model.Clock, prio model.Priority, options ...string) model.Job {
	t.Helper()
	if len(options) == 0 {
		options = []string{"M1", "M2"}
	}
	j, err := model.NewJob(id, product, proc, due, prio, options)
	require.NoError(t, err)
	return j
}

func twoMachines() []model.Machine {
	return []model.Machine{
		{ID: "M1", Capabilities: []string{"P_A", "P_B"}},
		{ID: "M2", Capabilities: []string{"P_A", "P_B"}},
	}
}

func assignmentByJob(s *model.Schedule, jobID string) (model.JobAssignment, bool) {
	for _, a := range s.AllAssignments() {
		if a.Job.ID == jobID {
			return a, true
		}
	}
	return model.JobAssignment{}, false
}

func TestBatchingGroupsAndPutsRushFirst(t *testing.T) {
	c := model.DefaultConstraint()
	machines := []model.Machine{{ID: "M1", Capabilities: []string{"P_A"}}}
	jobs := []model.Job{
		job(t, "J1", "P_A", 60, model.NewClock(12, 0), model.PriorityNormal, "M1"),
		job(t, "J2", "P_A", 45, model.NewClock(10, 0), model.PriorityRush, "M1"),
		job(t, "J3", "P_A", 30, model.NewClock(14, 0), model.PriorityNormal, "M1"),
	}

	res := New(BatchingPolicy{}, nil).Run(jobs, machines, c)
	require.Equal(t, 3, res.Scheduled)

	seq := res.Schedule.MachineJobs("M1")
	require.Len(t, seq, 3)
	assert.Equal(t, "J2", seq[0].Job.ID, "rush order runs first")
	assert.Equal(t, model.NewClock(8, 0), seq[0].Start)
	assert.Equal(t, 0, seq[0].SetupTimeBefore, "first job on a machine has no setup")
	assert.Equal(t, "J1", seq[1].Job.ID, "earlier due time next")
	assert.Equal(t, model.DefaultSameSetup, seq[1].SetupTimeBefore)
	assert.Equal(t, "J3", seq[2].Job.ID)

	kpi := res.Schedule.ComputeKPI(machines, c)
	assert.Equal(t, 0, kpi.NumSetupSwitches, "single product type never switches")
}

func TestBatchingAvoidsDowntime(t *testing.T) {
	c := model.DefaultConstraint()
	machines := []model.Machine{{
		ID:           "M1",
		Capabilities: []string{"P_A"},
		Downtime: []model.DowntimeWindow{
			{Start: model.NewClock(10, 0), End: model.NewClock(11, 30), Reason: "Maintenance"},
		},
	}}
	jobs := []model.Job{
		job(t, "J1", "P_A", 90, model.NewClock(12, 0), model.PriorityNormal, "M1"),
		job(t, "J2", "P_A", 60, model.NewClock(16, 0), model.PriorityNormal, "M1"),
	}

	res := New(BatchingPolicy{}, nil).Run(jobs, machines, c)
	require.Equal(t, 2, res.Scheduled)

	// J1 fills 08:00-09:30. J2 would start 09:35 and collide with the
	// window, so it is pushed past 11:30.
	a2, ok := assignmentByJob(res.Schedule, "J2")
	require.True(t, ok)
	assert.True(t, a2.Start >= model.NewClock(11, 30),
		"start %s must not fall inside the maintenance window", a2.Start)
	for _, d := range machines[0].Downtime {
		assert.False(t, d.Overlaps(a2.Start, a2.End))
	}
}

func TestBaselineIgnoresDowntimeAndLoad(t *testing.T) {
	c := model.DefaultConstraint()
	machines := []model.Machine{
		{
			ID:           "M1",
			Capabilities: []string{"P_A"},
			Downtime: []model.DowntimeWindow{
				{Start: model.NewClock(8, 30), End: model.NewClock(9, 0)},
			},
		},
		{ID: "M2", Capabilities: []string{"P_A"}},
	}
	jobs := []model.Job{
		job(t, "J1", "P_A", 60, model.NewClock(16, 0), model.PriorityNormal),
		job(t, "J2", "P_A", 60, model.NewClock(16, 0), model.PriorityNormal),
	}

	res := New(BaselinePolicy{}, nil).Run(jobs, machines, c)
	require.Equal(t, 2, res.Scheduled)

	// Everything piles onto the first compatible machine, straight through
	// the downtime window.
	assert.Len(t, res.Schedule.MachineJobs("M1"), 2)
	assert.Empty(t, res.Schedule.MachineJobs("M2"))
	first := res.Schedule.MachineJobs("M1")[0]
	assert.True(t, machines[0].Downtime[0].Overlaps(first.Start, first.End))
}

func TestRebalanceSpreadsLoad(t *testing.T) {
	c := model.DefaultConstraint()
	machines := twoMachines()
	jobs := []model.Job{
		job(t, "J1", "P_A", 120, model.NewClock(16, 0), model.PriorityNormal),
		job(t, "J2", "P_A", 90, model.NewClock(16, 0), model.PriorityNormal),
		job(t, "J3", "P_A", 60, model.NewClock(16, 0), model.PriorityNormal),
		job(t, "J4", "P_A", 30, model.NewClock(16, 0), model.PriorityNormal),
	}

	res := New(RebalancePolicy{}, nil).Run(jobs, machines, c)
	require.Equal(t, 4, res.Scheduled)
	assert.NotEmpty(t, res.Schedule.MachineJobs("M1"))
	assert.NotEmpty(t, res.Schedule.MachineJobs("M2"))

	// Longest first on the least-loaded machine: J1 on M1, J2 on M2, then
	// J3 back on M2 (90 < 120) and J4 on M1.
	m1 := res.Schedule.MachineJobs("M1")
	require.NotEmpty(t, m1)
	assert.Equal(t, "J1", m1[0].Job.ID)
}

func TestRebalanceRushBeatsLength(t *testing.T) {
	jobs := []model.Job{
		{ID: "long", ProcessingTime: 200, Priority: model.PriorityNormal},
		{ID: "short-rush", ProcessingTime: 10, Priority: model.PriorityRush},
	}
	ordered := RebalancePolicy{}.OrderJobs(jobs)
	assert.Equal(t, "short-rush", ordered[0].ID)
}

func TestDroppedJobsOnlyShowInCounts(t *testing.T) {
	c := model.DefaultConstraint()
	machines := []model.Machine{{ID: "M1", Capabilities: []string{"P_A"}}}
	jobs := []model.Job{
		job(t, "J1", "P_A", 60, model.NewClock(16, 0), model.PriorityNormal, "M1"),
		// No machine produces P_X.
		job(t, "J2", "P_X", 60, model.NewClock(16, 0), model.PriorityNormal, "M1"),
		// Compatible by product but not by machine options.
		job(t, "J3", "P_A", 60, model.NewClock(16, 0), model.PriorityNormal, "M9"),
	}

	res := New(BatchingPolicy{}, nil).Run(jobs, machines, c)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Scheduled)
	assert.Equal(t, 2, res.Dropped)
	assert.Len(t, res.Schedule.AllAssignments(), 1)
}

func TestDowntimeRetryKeepsAdvancedCursor(t *testing.T) {
	c := model.DefaultConstraint()
	// Two back-to-back windows defeat the single retry for a long job.
	machines := []model.Machine{{
		ID:           "M1",
		Capabilities: []string{"P_A"},
		Downtime: []model.DowntimeWindow{
			{Start: model.NewClock(8, 30), End: model.NewClock(9, 0)},
			{Start: model.NewClock(9, 30), End: model.NewClock(10, 0)},
		},
	}}
	jobs := []model.Job{
		job(t, "J1", "P_A", 60, model.NewClock(16, 0), model.PriorityNormal, "M1"),
		job(t, "J2", "P_A", 20, model.NewClock(16, 0), model.PriorityNormal, "M1"),
	}

	res := New(BatchingPolicy{}, nil).Run(jobs, machines, c)

	// J1: 08:00-09:00 hits the first window, retry from 09:00 hits the
	// second, machine rejected, job dropped. The cursor stays at 09:00.
	assert.Equal(t, 1, res.Dropped)
	a2, ok := assignmentByJob(res.Schedule, "J2")
	require.True(t, ok)
	assert.Equal(t, model.NewClock(9, 0), a2.Start, "next job starts from the advanced cursor")
}

func TestSetupChargedOnProductSwitch(t *testing.T) {
	c := model.DefaultConstraint()
	c.SetupTimes = map[string]int{"P_A->P_B": 25}
	machines := []model.Machine{{ID: "M1", Capabilities: []string{"P_A", "P_B"}}}
	jobs := []model.Job{
		job(t, "J1", "P_A", 60, model.NewClock(16, 0), model.PriorityNormal, "M1"),
		job(t, "J2", "P_B", 60, model.NewClock(16, 0), model.PriorityNormal, "M1"),
	}

	res := New(BaselinePolicy{}, nil).Run(jobs, machines, c)
	a2, ok := assignmentByJob(res.Schedule, "J2")
	require.True(t, ok)
	assert.Equal(t, 25, a2.SetupTimeBefore)
	assert.Equal(t, model.NewClock(9, 25), a2.Start, "setup elapses before the job starts")
}

func TestRunIsDeterministic(t *testing.T) {
	c := model.DefaultConstraint()
	machines := twoMachines()
	jobs := []model.Job{
		job(t, "J1", "P_A", 60, model.NewClock(12, 0), model.PriorityNormal),
		job(t, "J2", "P_B", 45, model.NewClock(11, 0), model.PriorityRush),
		job(t, "J3", "P_A", 30, model.NewClock(14, 0), model.PriorityNormal),
	}

	e := New(BatchingPolicy{}, nil)
	first := e.Run(jobs, machines, c)
	second := e.Run(jobs, machines, c)
	assert.Equal(t, first.Schedule.AllAssignments(), second.Schedule.AllAssignments())
}
