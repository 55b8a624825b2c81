package scenarios

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbaptistec/shiftplan/core/model"
)

func TestRandomJobsAreWellFormed(t *testing.T) {
	g := NewGenerator(42)
	shiftStart, shiftEnd := model.NewClock(8, 0), model.NewClock(16, 0)
	machineIDs := []string{"M1", "M2", "M3"}

	jobs, err := g.RandomJobs(50, machineIDs, 0.2, shiftStart, shiftEnd)
	require.NoError(t, err)
	require.Len(t, jobs, 50)

	for _, j := range jobs {
		assert.GreaterOrEqual(t, j.ProcessingTime, 10)
		assert.True(t, j.Priority.Valid())
		assert.NotEmpty(t, j.MachineOptions)
		assert.GreaterOrEqual(t, j.DueTime.Minutes(), shiftStart.Minutes()+60)
		assert.LessOrEqual(t, j.DueTime.Minutes(), shiftEnd.Minutes())
		assert.Contains(t, g.profiles, j.ProductType)
		for _, id := range j.MachineOptions {
			assert.Contains(t, machineIDs, id)
		}
	}
}

func TestRandomJobsDeterministicPerSeed(t *testing.T) {
	shiftStart, shiftEnd := model.NewClock(8, 0), model.NewClock(16, 0)
	ids := []string{"M1", "M2"}

	first, err := NewGenerator(7).RandomJobs(20, ids, 0.3, shiftStart, shiftEnd)
	require.NoError(t, err)
	second, err := NewGenerator(7).RandomJobs(20, ids, 0.3, shiftStart, shiftEnd)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := NewGenerator(8).RandomJobs(20, ids, 0.3, shiftStart, shiftEnd)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestRushOrder(t *testing.T) {
	g := NewGenerator(1)
	shiftStart := model.NewClock(8, 0)

	j, err := g.RushOrder([]string{"M1", "M2"}, shiftStart)
	require.NoError(t, err)
	assert.True(t, j.IsRush())
	assert.True(t, strings.HasPrefix(j.ID, "RUSH-"))
	assert.GreaterOrEqual(t, j.DueTime.Hour(), 10, "deadline lands two to three hours in")
	assert.LessOrEqual(t, j.DueTime.Hour(), 11)
	assert.Equal(t, []string{"M1", "M2"}, j.MachineOptions)
}

func TestRandomDowntimeBounds(t *testing.T) {
	g := NewGenerator(3)
	for i := 0; i < 20; i++ {
		d := g.RandomDowntime()
		length := d.End.Minutes() - d.Start.Minutes()
		assert.GreaterOrEqual(t, length, 30)
		assert.LessOrEqual(t, length, 90)
		assert.GreaterOrEqual(t, d.Start.Hour(), 9)
		assert.NotEmpty(t, d.Reason)
	}
}
