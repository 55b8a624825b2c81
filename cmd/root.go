package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "shiftplan",
	Short: "Shift production scheduler",
	Long: `shiftplan assigns production jobs to machines within a shift,
minimizing setup changeovers and balancing machine load while meeting
rush-order deadlines.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "policy.yaml", "policy configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
