package scenarios

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jbaptistec/shiftplan/core/model"
)

// ProductProfile parameterizes the processing-time distribution of one
// product family.
type ProductProfile struct {
	MeanMinutes   float64
	StddevMinutes float64
}

// DefaultProfiles mirrors the shop's usual product mix.
var DefaultProfiles = map[string]ProductProfile{
	"P_A": {MeanMinutes: 45, StddevMinutes: 15},
	"P_B": {MeanMinutes: 60, StddevMinutes: 20},
	"P_C": {MeanMinutes: 30, StddevMinutes: 10},
}

// Generator produces pseudo-random jobs and downtime events. A fixed seed
// yields a reproducible stream.
type Generator struct {
	rng      *rand.Rand
	profiles map[string]ProductProfile
	products []string
}

// NewGenerator builds a seeded generator over the default product profiles.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		profiles: DefaultProfiles,
		products: []string{"P_A", "P_B", "P_C"},
	}
}

// RandomJobs generates count jobs with normal-distributed processing times,
// due times inside the shift and random machine compatibility.
func (g *Generator) RandomJobs(count int, machineIDs []string, rushProbability float64, shiftStart, shiftEnd model.Clock) ([]model.Job, error) {
	if len(machineIDs) == 0 {
		machineIDs = []string{"M1", "M2", "M3"}
	}
	jobs := make([]model.Job, 0, count)
	for i := 0; i < count; i++ {
		product := g.products[g.rng.Intn(len(g.products))]
		profile := g.profiles[product]
		dist := distuv.Normal{Mu: profile.MeanMinutes, Sigma: profile.StddevMinutes, Src: g.rng}
		processing := int(dist.Rand())
		if processing < 10 {
			processing = 10
		}

		// Due no earlier than one hour into the shift.
		low := shiftStart.Minutes() + 60
		due := model.ClampClock(low + g.rng.Intn(shiftEnd.Minutes()-low+1))

		priority := model.PriorityNormal
		if g.rng.Float64() < rushProbability {
			priority = model.PriorityRush
		}

		options := g.sampleMachines(machineIDs)

		job, err := model.NewJob(fmt.Sprintf("J%03d", i+1), product, processing, due, priority, options)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// RushOrder generates a single rush job with a tight deadline, runnable on
// any of the given machines.
func (g *Generator) RushOrder(machineIDs []string, shiftStart model.Clock) (model.Job, error) {
	product := g.products[g.rng.Intn(len(g.products))]
	profile := g.profiles[product]
	dueHour := shiftStart.Hour() + 2 + g.rng.Intn(2)
	dueMinute := []int{0, 15, 30, 45}[g.rng.Intn(4)]
	id := "RUSH-" + uuid.NewString()[:8]
	return model.NewJob(id, product, int(profile.MeanMinutes), model.NewClock(dueHour, dueMinute), model.PriorityRush, machineIDs)
}

// RandomDowntime generates a 30 to 90 minute maintenance window during the
// core of the shift.
func (g *Generator) RandomDowntime() model.DowntimeWindow {
	startHour := 9 + g.rng.Intn(6)
	startMinute := []int{0, 30}[g.rng.Intn(2)]
	duration := 30 + g.rng.Intn(61)
	start := model.NewClock(startHour, startMinute)
	reasons := []string{
		"Scheduled Maintenance",
		"Tool Change",
		"Quality Inspection",
		"Unplanned Breakdown",
		"Material Shortage",
	}
	return model.DowntimeWindow{
		Start:  start,
		End:    model.ClampClock(start.Minutes() + duration),
		Reason: reasons[g.rng.Intn(len(reasons))],
	}
}

// sampleMachines picks a non-empty random subset preserving input order.
func (g *Generator) sampleMachines(machineIDs []string) []string {
	count := 1 + g.rng.Intn(len(machineIDs))
	perm := g.rng.Perm(len(machineIDs))[:count]
	picked := make(map[int]bool, count)
	for _, p := range perm {
		picked[p] = true
	}
	var out []string
	for i, id := range machineIDs {
		if picked[i] {
			out = append(out, id)
		}
	}
	return out
}
