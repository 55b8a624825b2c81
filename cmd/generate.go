package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbaptistec/shiftplan/config"
	"github.com/jbaptistec/shiftplan/pkg/export"
	"github.com/jbaptistec/shiftplan/qa/scenarios"
)

var (
	genCount int
	genRush  int
	genSeed  uint64
	genOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic job list for testing",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 20, "number of regular jobs")
	generateCmd.Flags().IntVarP(&genRush, "rush", "r", 0, "number of additional rush orders")
	generateCmd.Flags().Uint64VarP(&genSeed, "seed", "s", 42, "random seed")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output CSV file (default stdout)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
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

	ids := make([]string, len(machines))
	for i, m := range machines {
		ids[i] = m.ID
	}

	gen := scenarios.NewGenerator(genSeed)
	jobs, err := gen.RandomJobs(genCount, ids, 0, constraint.ShiftStart, constraint.ShiftEnd)
	if err != nil {
		return fmt.Errorf("generate jobs: %w", err)
	}
	for i := 0; i < genRush; i++ {
		rush, err := gen.RushOrder(ids, constraint.ShiftStart)
		if err != nil {
			return fmt.Errorf("generate rush order: %w", err)
		}
		jobs = append(jobs, rush)
	}

	out := cmd.OutOrStdout()
	if genOut != "" {
		f, err := os.Create(genOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return export.WriteJobsCSV(out, jobs)
}
