package model

import "fmt"

// JobAssignment places one job on one machine with concrete timing. It is
// immutable once appended to a schedule.
type JobAssignment struct {
	Job             Job
	MachineID       string
	Start           Clock
	End             Clock
	SetupTimeBefore int // setup minutes preceding the job
}

// Duration returns processing plus setup minutes.
func (a JobAssignment) Duration() int {
	return a.Job.ProcessingTime + a.SetupTimeBefore
}

// IsLate reports whether the job finishes after its due time.
func (a JobAssignment) IsLate() bool {
	return a.End > a.Job.DueTime
}

// Tardiness returns the minutes by which the job misses its due time.
func (a JobAssignment) Tardiness() int {
	if !a.IsLate() {
		return 0
	}
	t := a.End.Minutes() - a.Job.DueTime.Minutes()
	if t < 0 {
		return 0
	}
	return t
}

// Schedule maps machines to ordered assignment sequences. The per-machine
// order is the order assignments were appended, which is not necessarily
// chronological. Machines iterate in first-seen order.
type Schedule struct {
	order      []string
	byMachine  map[string][]JobAssignment
	KPI        *KPI
	CreatedBy  string
	// Explanation is an opaque string attached by callers; the scheduling
	// core never reads it back.
	Explanation string
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{byMachine: make(map[string][]JobAssignment)}
}

// Add appends an assignment to its machine's sequence.
func (s *Schedule) Add(a JobAssignment) {
	if _, ok := s.byMachine[a.MachineID]; !ok {
		s.order = append(s.order, a.MachineID)
	}
	s.byMachine[a.MachineID] = append(s.byMachine[a.MachineID], a)
}

// MachineIDs returns the machines carrying assignments in first-seen order.
func (s *Schedule) MachineIDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// MachineJobs returns the assignment sequence for one machine.
func (s *Schedule) MachineJobs(machineID string) []JobAssignment {
	return s.byMachine[machineID]
}

// AllAssignments returns every assignment, machine by machine in first-seen
// order, preserving per-machine append order.
func (s *Schedule) AllAssignments() []JobAssignment {
	var all []JobAssignment
	for _, id := range s.order {
		all = append(all, s.byMachine[id]...)
	}
	return all
}

func (s *Schedule) String() string {
	total := 0
	for _, jobs := range s.byMachine {
		total += len(jobs)
	}
	return fmt.Sprintf("Schedule(%d machines, %d jobs, KPI: %v)", len(s.order), total, s.KPI)
}
