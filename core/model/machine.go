package model

import "fmt"

// DowntimeWindow is a half-open interval [Start,End) during which no job may
// run on the machine.
type DowntimeWindow struct {
	Start  Clock
	End    Clock
	Reason string
}

// Overlaps reports whether the downtime intersects the half-open interval
// [start,end).
func (d DowntimeWindow) Overlaps(start, end Clock) bool {
	return !(end <= d.Start || start >= d.End)
}

func (d DowntimeWindow) String() string {
	return fmt.Sprintf("Downtime(%s-%s: %s)", d.Start, d.End, d.Reason)
}

// Machine is a production machine. It is configured once per optimization
// request; the scheduling algorithms never mutate it.
type Machine struct {
	ID              string
	Capabilities    []string // product types the machine can produce
	CapacityPerHour int
	Downtime        []DowntimeWindow
	OperatorID      string
}

// CanProduce reports whether the machine can handle the product type.
func (m Machine) CanProduce(productType string) bool {
	for _, c := range m.Capabilities {
		if c == productType {
			return true
		}
	}
	return false
}

// IsAvailableAt reports whether t falls outside every downtime window.
func (m Machine) IsAvailableAt(t Clock) bool {
	for _, d := range m.Downtime {
		if d.Start <= t && t < d.End {
			return false
		}
	}
	return true
}

func (m Machine) String() string {
	return fmt.Sprintf("Machine(%s: %d capabilities, %d downtime windows)", m.ID, len(m.Capabilities), len(m.Downtime))
}
