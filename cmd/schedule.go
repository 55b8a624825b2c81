package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jbaptistec/shiftplan/config"
	"github.com/jbaptistec/shiftplan/core/engine"
	"github.com/jbaptistec/shiftplan/core/model"
	"github.com/jbaptistec/shiftplan/core/pipeline"
	"github.com/jbaptistec/shiftplan/core/validate"
	"github.com/jbaptistec/shiftplan/infra/logger"
	"github.com/jbaptistec/shiftplan/internal/eventbus"
	"github.com/jbaptistec/shiftplan/pkg/export"
)

var (
	jobsPath   string
	outPath    string
	outFormat  string
	policyName string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Build a shift schedule from a job list",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&jobsPath, "jobs", "j", "", "jobs CSV file (required)")
	scheduleCmd.Flags().StringVarP(&outPath, "out", "o", "", "schedule output file (default stdout)")
	scheduleCmd.Flags().StringVarP(&outFormat, "format", "f", "csv", "output format: csv or json")
	scheduleCmd.Flags().StringVarP(&policyName, "policy", "p", "auto", "policy: auto, batching, rebalance or baseline")
	_ = scheduleCmd.MarkFlagRequired("jobs")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	constraint, err := cfg.Constraint()
	if err != nil {
		return fmt.Errorf("build constraint: %w", err)
	}
	machines, err := cfg.MachineList()
	if err != nil {
		return fmt.Errorf("build machines: %w", err)
	}

	f, err := os.Open(jobsPath)
	if err != nil {
		return fmt.Errorf("open jobs: %w", err)
	}
	jobs, err := export.ReadJobsCSV(f)
	cerr := f.Close()
	if err != nil {
		return fmt.Errorf("read jobs: %w", err)
	}
	if cerr != nil {
		return cerr
	}

	logg := logger.New("schedule")
	schedule, err := buildSchedule(ctx, logg, jobs, machines, constraint)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		of, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if err := of.Close(); err != nil {
				logg.Errorf("close output: %v", err)
			}
		}()
		out = of
	}
	switch outFormat {
	case "csv":
		return export.WriteScheduleCSV(out, schedule)
	case "json":
		return export.WriteScheduleJSON(out, schedule)
	default:
		return fmt.Errorf("unsupported format: %s", outFormat)
	}
}

func buildSchedule(ctx context.Context, logg logger.Logger, jobs []model.Job, machines []model.Machine, constraint model.Constraint) (*model.Schedule, error) {
	if policyName == "auto" {
		bus := eventbus.New()
		defer bus.Close()
		p := pipeline.New(pipeline.Config{Logger: logg, Bus: bus})
		res := p.Optimize(ctx, jobs, machines, constraint)
		if res.Status != pipeline.StatusCompleted {
			return nil, fmt.Errorf("no valid schedule found:\n%s", res.Explanation)
		}
		logg.Infof("selected %s schedule, score %.1f", res.Label, res.Schedule.KPI.WeightedScore(constraint))
		return res.Schedule, nil
	}

	policy, err := policyByName(policyName)
	if err != nil {
		return nil, err
	}
	run := engine.New(policy, logg).Run(jobs, machines, constraint)
	run.Schedule.ComputeKPI(machines, constraint)
	run.Schedule.Explanation = run.Summary
	v := validate.Validate(run.Schedule, jobs, machines, constraint)
	if !v.Valid {
		logg.Warnf("schedule has %d violation(s)", len(v.Violations))
	}
	logg.Infof("%s", v.Report)
	return run.Schedule, nil
}

func policyByName(name string) (engine.Policy, error) {
	switch name {
	case "batching":
		return engine.BatchingPolicy{}, nil
	case "rebalance":
		return engine.RebalancePolicy{}, nil
	case "baseline":
		return engine.BaselinePolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy: %s", name)
	}
}
