package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbaptistec/shiftplan/core/model"
)

func candidate(label string, kpi *model.KPI) Candidate {
	s := model.NewSchedule()
	s.KPI = kpi
	return Candidate{Schedule: s, Label: label}
}

func TestSelectBestPicksLowestScore(t *testing.T) {
	c := model.DefaultConstraint()
	best, err := SelectBest([]Candidate{
		candidate("batching", &model.KPI{TotalTardiness: 100}),
		candidate("rebalance", &model.KPI{TotalTardiness: 20}),
	}, c)
	require.NoError(t, err)
	assert.Equal(t, "rebalance", best.Label)
}

func TestSelectBestTieKeepsInputOrder(t *testing.T) {
	c := model.DefaultConstraint()
	best, err := SelectBest([]Candidate{
		candidate("first", &model.KPI{TotalTardiness: 50}),
		candidate("second", &model.KPI{TotalTardiness: 50}),
	}, c)
	require.NoError(t, err)
	assert.Equal(t, "first", best.Label)
}

func TestSelectBestViolationPenaltyDominates(t *testing.T) {
	c := model.DefaultConstraint()
	best, err := SelectBest([]Candidate{
		candidate("invalid", &model.KPI{NumViolations: 1}),
		candidate("valid", &model.KPI{TotalTardiness: 900}),
	}, c)
	require.NoError(t, err)
	assert.Equal(t, "valid", best.Label)
}

func TestSelectBestErrors(t *testing.T) {
	c := model.DefaultConstraint()

	_, err := SelectBest(nil, c)
	assert.Error(t, err)

	_, err = SelectBest([]Candidate{candidate("no-kpi", nil)}, c)
	assert.Error(t, err)
}

func TestSelectBestSkipsMissingKPI(t *testing.T) {
	c := model.DefaultConstraint()
	best, err := SelectBest([]Candidate{
		candidate("no-kpi", nil),
		candidate("scored", &model.KPI{TotalTardiness: 10}),
	}, c)
	require.NoError(t, err)
	assert.Equal(t, "scored", best.Label)
}
