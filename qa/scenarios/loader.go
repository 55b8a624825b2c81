// Package scenarios provides canned and randomly generated scheduling
// scenarios for tests, demos and benchmarking the policies against each
// other.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jbaptistec/shiftplan/core/model"
)

// JobDef describes a job in a scenario file.
type JobDef struct {
	ID             string   `yaml:"id"`
	ProductType    string   `yaml:"product_type"`
	ProcessingTime int      `yaml:"processing_time"`
	DueTime        string   `yaml:"due_time"`
	Priority       string   `yaml:"priority"`
	MachineOptions []string `yaml:"machine_options"`
}

// ToModel validates and converts the definition.
func (j JobDef) ToModel() (model.Job, error) {
	due, err := model.ParseClock(j.DueTime)
	if err != nil {
		return model.Job{}, fmt.Errorf("job %s: %w", j.ID, err)
	}
	priority := j.Priority
	if priority == "" {
		priority = string(model.PriorityNormal)
	}
	return model.NewJob(j.ID, j.ProductType, j.ProcessingTime, due, model.Priority(priority), j.MachineOptions)
}

// DowntimeDef describes a maintenance window in a scenario file.
type DowntimeDef struct {
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
	Reason string `yaml:"reason,omitempty"`
}

// MachineDef describes a machine in a scenario file.
type MachineDef struct {
	ID           string        `yaml:"id"`
	Capabilities []string      `yaml:"capabilities"`
	Downtime     []DowntimeDef `yaml:"downtime,omitempty"`
}

// ToModel validates and converts the definition.
func (m MachineDef) ToModel() (model.Machine, error) {
	out := model.Machine{ID: m.ID, Capabilities: m.Capabilities, CapacityPerHour: 60}
	for _, d := range m.Downtime {
		start, err := model.ParseClock(d.Start)
		if err != nil {
			return model.Machine{}, fmt.Errorf("machine %s: %w", m.ID, err)
		}
		end, err := model.ParseClock(d.End)
		if err != nil {
			return model.Machine{}, fmt.Errorf("machine %s: %w", m.ID, err)
		}
		reason := d.Reason
		if reason == "" {
			reason = "Maintenance"
		}
		out.Downtime = append(out.Downtime, model.DowntimeWindow{Start: start, End: end, Reason: reason})
	}
	return out, nil
}

// Expected carries assertion targets for scenario-driven tests.
type Expected struct {
	Scheduled int `yaml:"scheduled"`
	Valid     bool `yaml:"valid"`
}

// Scenario is one scheduling situation loaded from YAML.
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Jobs        []JobDef     `yaml:"jobs"`
	Machines    []MachineDef `yaml:"machines"`
	Expected    Expected     `yaml:"expected"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Build converts the scenario definitions into model objects.
func (s *Scenario) Build() ([]model.Job, []model.Machine, error) {
	jobs := make([]model.Job, 0, len(s.Jobs))
	for _, jd := range s.Jobs {
		j, err := jd.ToModel()
		if err != nil {
			return nil, nil, err
		}
		jobs = append(jobs, j)
	}
	machines := make([]model.Machine, 0, len(s.Machines))
	for _, md := range s.Machines {
		m, err := md.ToModel()
		if err != nil {
			return nil, nil, err
		}
		machines = append(machines, m)
	}
	return jobs, machines, nil
}
