package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDowntimeOverlaps(t *testing.T) {
	d := DowntimeWindow{Start: NewClock(10, 0), End: NewClock(11, 30), Reason: "Maintenance"}

	cases := []struct {
		name       string
		start, end Clock
		want       bool
	}{
		{"fully before", NewClock(8, 0), NewClock(10, 0), false},
		{"fully after", NewClock(11, 30), NewClock(12, 0), false},
		{"straddles start", NewClock(9, 30), NewClock(10, 30), true},
		{"straddles end", NewClock(11, 0), NewClock(12, 0), true},
		{"contained", NewClock(10, 15), NewClock(11, 0), true},
		{"contains window", NewClock(9, 0), NewClock(12, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, d.Overlaps(tc.start, tc.end))
		})
	}
}

func TestMachineCanProduce(t *testing.T) {
	m := Machine{ID: "M1", Capabilities: []string{"P_A", "P_B"}}
	assert.True(t, m.CanProduce("P_A"))
	assert.False(t, m.CanProduce("P_C"))
}

func TestMachineIsAvailableAt(t *testing.T) {
	m := Machine{
		ID:       "M1",
		Downtime: []DowntimeWindow{{Start: NewClock(10, 0), End: NewClock(11, 0)}},
	}
	assert.True(t, m.IsAvailableAt(NewClock(9, 59)))
	assert.False(t, m.IsAvailableAt(NewClock(10, 0)))
	assert.False(t, m.IsAvailableAt(NewClock(10, 59)))
	assert.True(t, m.IsAvailableAt(NewClock(11, 0)), "downtime end is exclusive")
}
