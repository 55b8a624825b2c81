package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// violationPenalty dominates any feasible combination of the weighted terms,
// so a valid candidate always outranks an invalid one.
const violationPenalty = 1000

// KPI aggregates schedule quality metrics. All fields are derived and
// recomputed from scratch on demand, never maintained incrementally.
type KPI struct {
	TotalTardiness        int
	TotalSetupTime        int
	NumSetupSwitches      int
	MaxMachineUtilization float64 // percent of shift duration
	MinMachineUtilization float64
	UtilizationImbalance  float64
	NumViolations         int
}

// WeightedScore folds the metrics into a single scalar. Lower is better.
func (k KPI) WeightedScore(c Constraint) float64 {
	return float64(k.TotalTardiness)*c.TardinessWeight +
		float64(k.TotalSetupTime)*c.SetupWeight +
		k.UtilizationImbalance*c.UtilizationWeight +
		float64(k.NumViolations)*violationPenalty
}

func (k KPI) String() string {
	return fmt.Sprintf("KPI(Tardiness: %dmin, Setup: %dmin, Switches: %d, Violations: %d)",
		k.TotalTardiness, k.TotalSetupTime, k.NumSetupSwitches, k.NumViolations)
}

// ComputeKPI recomputes all metrics for the schedule and stores the result on
// it. Setup switches are counted over each machine's assignments in append
// order, not chronological order. Utilization covers only machines with at
// least one assignment.
func (s *Schedule) ComputeKPI(machines []Machine, c Constraint) KPI {
	var kpi KPI

	for _, a := range s.AllAssignments() {
		kpi.TotalTardiness += a.Tardiness()
		kpi.TotalSetupTime += a.SetupTimeBefore
	}

	for _, id := range s.order {
		jobs := s.byMachine[id]
		for i := 1; i < len(jobs); i++ {
			if jobs[i].Job.ProductType != jobs[i-1].Job.ProductType {
				kpi.NumSetupSwitches++
			}
		}
	}

	shift := c.ShiftDuration()
	var utilizations []float64
	for _, m := range machines {
		jobs := s.MachineJobs(m.ID)
		if len(jobs) == 0 {
			continue
		}
		total := 0
		for _, a := range jobs {
			total += a.Duration()
		}
		utilizations = append(utilizations, float64(total)/float64(shift)*100)
	}
	if len(utilizations) > 0 {
		kpi.MaxMachineUtilization = floats.Max(utilizations)
		kpi.MinMachineUtilization = floats.Min(utilizations)
		kpi.UtilizationImbalance = kpi.MaxMachineUtilization - kpi.MinMachineUtilization
	}

	s.KPI = &kpi
	return kpi
}
