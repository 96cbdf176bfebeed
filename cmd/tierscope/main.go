// Package main provides the tierscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "tierscope",
		Short: "Maturity grading for monitored application portfolios",
		Long: `Tierscope grades monitored applications against tiered quality
thresholds, compares assessment runs, and reports what improved or
regressed across a portfolio.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newAssessCmd(),
		newCompareCmd(),
		newReportCmd(),
		newThresholdsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
