package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbaptistec/shiftplan/core/model"
)

const sampleScenario = `
name: rush-vs-downtime
description: rush order competing with a maintenance window
jobs:
  - id: J1
    product_type: P_A
    processing_time: 90
    due_time: "12:00"
    machine_options: [M1, M2]
  - id: J2
    product_type: P_B
    processing_time: 45
    due_time: "10:30"
    priority: rush
    machine_options: [M1]
machines:
  - id: M1
    capabilities: [P_A, P_B]
    downtime:
      - start: "10:00"
        end: "11:30"
  - id: M2
    capabilities: [P_A]
expected:
  scheduled: 2
  valid: true
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndBuild(t *testing.T) {
	sc, err := Load(writeScenario(t, sampleScenario))
	require.NoError(t, err)
	assert.Equal(t, "rush-vs-downtime", sc.Name)
	assert.Equal(t, 2, sc.Expected.Scheduled)
	assert.True(t, sc.Expected.Valid)

	jobs, machines, err := sc.Build()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Len(t, machines, 2)

	assert.Equal(t, model.PriorityNormal, jobs[0].Priority, "priority defaults to normal")
	assert.True(t, jobs[1].IsRush())
	assert.Equal(t, model.NewClock(10, 30), jobs[1].DueTime)

	require.Len(t, machines[0].Downtime, 1)
	assert.Equal(t, "Maintenance", machines[0].Downtime[0].Reason, "reason defaults")
	assert.Equal(t, model.NewClock(11, 30), machines[0].Downtime[0].End)
	assert.Empty(t, machines[1].Downtime)
}

func TestBuildRejectsBadDefinitions(t *testing.T) {
	badClock := `
jobs:
  - id: J1
    product_type: P_A
    processing_time: 60
    due_time: "26:00"
    machine_options: [M1]
machines:
  - id: M1
    capabilities: [P_A]
`
	sc, err := Load(writeScenario(t, badClock))
	require.NoError(t, err)
	_, _, err = sc.Build()
	assert.Error(t, err)

	noOptions := `
jobs:
  - id: J1
    product_type: P_A
    processing_time: 60
    due_time: "12:00"
machines:
  - id: M1
    capabilities: [P_A]
`
	sc, err = Load(writeScenario(t, noOptions))
	require.NoError(t, err)
	_, _, err = sc.Build()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
