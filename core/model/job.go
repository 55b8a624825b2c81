package model

import "fmt"

// Priority classifies a job as a rush order or a normal order.
type Priority string

const (
	PriorityRush   Priority = "rush"
	PriorityNormal Priority = "normal"
)

// Valid reports whether the priority is one of the two known values.
func (p Priority) Valid() bool {
	return p == PriorityRush || p == PriorityNormal
}

// Job is a production order to be placed on a machine within the shift.
// Jobs are constructed once via NewJob and read-only afterwards.
type Job struct {
	ID             string
	ProductType    string
	ProcessingTime int // minutes
	DueTime        Clock
	Priority       Priority
	MachineOptions []string // machine ids the job may run on

	// Metadata carried through scheduling but not used by the algorithms.
	SetupRequirements string
	OperatorSkill     string
	BatchSize         int
}

// NewJob validates and builds a Job. Invalid inputs are programmer or import
// errors and fail fast here; they are never scheduling outcomes.
func NewJob(id, productType string, processingTime int, due Clock, priority Priority, machineOptions []string) (Job, error) {
	if !priority.Valid() {
		return Job{}, fmt.Errorf("job %s: priority must be %q or %q, got %q", id, PriorityRush, PriorityNormal, priority)
	}
	if processingTime <= 0 {
		return Job{}, fmt.Errorf("job %s: processing time must be positive, got %d", id, processingTime)
	}
	if len(machineOptions) == 0 {
		return Job{}, fmt.Errorf("job %s: at least one machine option is required", id)
	}
	return Job{
		ID:             id,
		ProductType:    productType,
		ProcessingTime: processingTime,
		DueTime:        due,
		Priority:       priority,
		MachineOptions: machineOptions,
		BatchSize:      1,
	}, nil
}

// IsRush reports whether the job is a rush order.
func (j Job) IsRush() bool { return j.Priority == PriorityRush }

// CanRunOn reports whether the machine is among the job's options.
func (j Job) CanRunOn(machineID string) bool {
	for _, id := range j.MachineOptions {
		if id == machineID {
			return true
		}
	}
	return false
}

func (j Job) String() string {
	flag := ""
	if j.IsRush() {
		flag = " [RUSH]"
	}
	return fmt.Sprintf("Job(%s: %s, %dmin, due %s%s)", j.ID, j.ProductType, j.ProcessingTime, j.DueTime, flag)
}
