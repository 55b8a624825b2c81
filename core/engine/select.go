package engine

import (
	"errors"
	"sort"

	"github.com/jbaptistec/shiftplan/core/model"
)

// Candidate labels a schedule produced by one policy.
type Candidate struct {
	Schedule *model.Schedule
	Label    string
}

// SelectBest returns the candidate with the lowest weighted KPI score.
// Candidates must already carry a computed KPI; those without one are
// skipped. Ties keep input order. Selection never re-validates: callers
// either exclude invalid candidates beforehand or accept the violation
// penalty as the tie-breaker.
func SelectBest(candidates []Candidate, c model.Constraint) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, errors.New("no candidate schedules provided")
	}
	type scored struct {
		cand  Candidate
		score float64
	}
	var list []scored
	for _, cand := range candidates {
		if cand.Schedule == nil || cand.Schedule.KPI == nil {
			continue
		}
		list = append(list, scored{cand: cand, score: cand.Schedule.KPI.WeightedScore(c)})
	}
	if len(list) == 0 {
		return Candidate{}, errors.New("no candidate carries a computed KPI")
	}
	sort.SliceStable(list, func(i, k int) bool { return list[i].score < list[k].score })
	return list[0].cand, nil
}
