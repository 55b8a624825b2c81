package model

import "fmt"

// Default setup durations applied when a transition is missing from the
// setup-time matrix.
const (
	DefaultSameSetup   = 5  // minutes, same product type
	DefaultSwitchSetup = 30 // minutes, different product types
)

// Constraint holds the shift boundaries, the setup-time matrix and the
// objective weights for one optimization request.
type Constraint struct {
	ShiftStart         Clock
	ShiftEnd           Clock
	MaxOvertimeMinutes int

	// SetupTimes maps ordered "from->to" product transitions to minutes.
	// The matrix is directed; it is never assumed symmetric.
	SetupTimes map[string]int

	RushWeight   float64
	NormalWeight float64

	TardinessWeight   float64
	SetupWeight       float64
	UtilizationWeight float64
}

// DefaultConstraint mirrors the standard day-shift policy.
func DefaultConstraint() Constraint {
	return Constraint{
		ShiftStart:        NewClock(8, 0),
		ShiftEnd:          NewClock(16, 0),
		RushWeight:        10,
		NormalWeight:      1,
		TardinessWeight:   1,
		SetupWeight:       0.5,
		UtilizationWeight: 0.3,
	}
}

// SetupTime returns the changeover minutes when switching the machine from
// one product type to another. Missing entries fall back to DefaultSameSetup
// for same-type transitions and DefaultSwitchSetup otherwise. The first job
// on a machine carries no setup; callers handle that case.
func (c Constraint) SetupTime(from, to string) int {
	key := from + "->" + to
	if v, ok := c.SetupTimes[key]; ok {
		return v
	}
	if from == to {
		return DefaultSameSetup
	}
	return DefaultSwitchSetup
}

// ShiftDuration returns the shift length in minutes.
func (c Constraint) ShiftDuration() int {
	return c.ShiftEnd.Minutes() - c.ShiftStart.Minutes()
}

// WithinShift reports whether t falls inside the shift, overtime included.
func (c Constraint) WithinShift(t Clock) bool {
	end := c.ShiftEnd.Minutes() + c.MaxOvertimeMinutes
	return c.ShiftStart.Minutes() <= t.Minutes() && t.Minutes() <= end
}

func (c Constraint) String() string {
	return fmt.Sprintf("Constraint(shift %s-%s, %d setup rules)", c.ShiftStart, c.ShiftEnd, len(c.SetupTimes))
}
