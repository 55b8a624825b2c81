// Package config loads the shift policy document (YAML or JSON) and turns
// it into validated model objects. The scheduling core never parses files
// itself; it only accepts the constructed Constraint and Machine values.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jbaptistec/shiftplan/core/model"
)

// ShiftConfig defines the shift boundaries.
type ShiftConfig struct {
	Start              string `json:"start"`
	End                string `json:"end"`
	MaxOvertimeMinutes int    `json:"max_overtime_minutes"`
}

// PriorityWeights weighs rush against normal orders.
type PriorityWeights struct {
	Rush   float64 `json:"rush"`
	Normal float64 `json:"normal"`
}

// ObjectiveWeights drives the weighted KPI score.
type ObjectiveWeights struct {
	Tardiness   float64 `json:"tardiness"`
	Setup       float64 `json:"setup"`
	Utilization float64 `json:"utilization"`
}

// DowntimeConfig is one maintenance window on a machine.
type DowntimeConfig struct {
	Start  string `json:"start_time"`
	End    string `json:"end_time"`
	Reason string `json:"reason"`
}

// MachineConfig describes one machine of the shop floor.
type MachineConfig struct {
	MachineID       string           `json:"machine_id"`
	Capabilities    []string         `json:"capabilities"`
	CapacityPerHour int              `json:"capacity_per_hour"`
	Downtime        []DowntimeConfig `json:"downtime_windows"`
	OperatorID      string           `json:"operator_id"`
}

// Config is the root of the policy document.
type Config struct {
	Shift            ShiftConfig      `json:"shift"`
	SetupTimes       map[string]int   `json:"setup_times"`
	PriorityWeights  PriorityWeights  `json:"priority_weights"`
	ObjectiveWeights ObjectiveWeights `json:"objective_weights"`
	Machines         []MachineConfig  `json:"machines"`
}

// SetDefaults applies the standard day-shift policy for missing fields.
func (c *Config) SetDefaults() {
	if c.Shift.Start == "" {
		c.Shift.Start = "08:00"
	}
	if c.Shift.End == "" {
		c.Shift.End = "16:00"
	}
	if c.PriorityWeights.Rush == 0 {
		c.PriorityWeights.Rush = 10
	}
	if c.PriorityWeights.Normal == 0 {
		c.PriorityWeights.Normal = 1
	}
	if c.ObjectiveWeights.Tardiness == 0 {
		c.ObjectiveWeights.Tardiness = 1
	}
	if c.ObjectiveWeights.Setup == 0 {
		c.ObjectiveWeights.Setup = 0.5
	}
	if c.ObjectiveWeights.Utilization == 0 {
		c.ObjectiveWeights.Utilization = 0.3
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if _, err := model.ParseClock(c.Shift.Start); err != nil {
		return fmt.Errorf("shift.start: %w", err)
	}
	if _, err := model.ParseClock(c.Shift.End); err != nil {
		return fmt.Errorf("shift.end: %w", err)
	}
	if c.Shift.MaxOvertimeMinutes < 0 {
		return fmt.Errorf("shift.max_overtime_minutes must not be negative")
	}
	for _, m := range c.Machines {
		if m.MachineID == "" {
			return fmt.Errorf("machine without machine_id")
		}
		for _, d := range m.Downtime {
			if _, err := model.ParseClock(d.Start); err != nil {
				return fmt.Errorf("machine %s downtime start: %w", m.MachineID, err)
			}
			if _, err := model.ParseClock(d.End); err != nil {
				return fmt.Errorf("machine %s downtime end: %w", m.MachineID, err)
			}
		}
	}
	return nil
}

// Load reads the policy file and applies optional SHIFTPLAN_ environment
// overrides (SHIFTPLAN_SHIFT__START=07:00 overrides shift.start).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("SHIFTPLAN_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "shiftplan_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Constraint converts the document into a model.Constraint.
func (c Config) Constraint() (model.Constraint, error) {
	start, err := model.ParseClock(c.Shift.Start)
	if err != nil {
		return model.Constraint{}, err
	}
	end, err := model.ParseClock(c.Shift.End)
	if err != nil {
		return model.Constraint{}, err
	}
	return model.Constraint{
		ShiftStart:         start,
		ShiftEnd:           end,
		MaxOvertimeMinutes: c.Shift.MaxOvertimeMinutes,
		SetupTimes:         c.SetupTimes,
		RushWeight:         c.PriorityWeights.Rush,
		NormalWeight:       c.PriorityWeights.Normal,
		TardinessWeight:    c.ObjectiveWeights.Tardiness,
		SetupWeight:        c.ObjectiveWeights.Setup,
		UtilizationWeight:  c.ObjectiveWeights.Utilization,
	}, nil
}

// MachineList converts the document into model.Machine values.
func (c Config) MachineList() ([]model.Machine, error) {
	machines := make([]model.Machine, 0, len(c.Machines))
	for _, mc := range c.Machines {
		m := model.Machine{
			ID:              mc.MachineID,
			Capabilities:    mc.Capabilities,
			CapacityPerHour: mc.CapacityPerHour,
			OperatorID:      mc.OperatorID,
		}
		if m.CapacityPerHour == 0 {
			m.CapacityPerHour = 60
		}
		for _, dc := range mc.Downtime {
			start, err := model.ParseClock(dc.Start)
			if err != nil {
				return nil, fmt.Errorf("machine %s: %w", mc.MachineID, err)
			}
			end, err := model.ParseClock(dc.End)
			if err != nil {
				return nil, fmt.Errorf("machine %s: %w", mc.MachineID, err)
			}
			reason := dc.Reason
			if reason == "" {
				reason = "Maintenance"
			}
			m.Downtime = append(m.Downtime, model.DowntimeWindow{Start: start, End: end, Reason: reason})
		}
		machines = append(machines, m)
	}
	return machines, nil
}
