package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/config"
	"github.com/tierscope/tierscope/pkg/portfolio"
)

func newCompareCmd() *cobra.Command {
	var (
		previousPath string
		currentPath  string
		outputFmt    string
		savePath     string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two assessment runs",
		Long: `Classifies every entity's tier change between a previous and a
current run, rolls the transitions into a portfolio summary, and
renders the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(compareOpts{
				previousPath: previousPath,
				currentPath:  currentPath,
				outputFmt:    outputFmt,
				savePath:     savePath,
			})
		},
	}

	cmd.Flags().StringVar(&previousPath, "previous", "", "Previous run file (required)")
	cmd.Flags().StringVar(&currentPath, "current", "", "Current run file (required)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, markdown, json or insights")
	cmd.Flags().StringVar(&savePath, "save", "", "Comparison output path (default: ~/.cache/tierscope/<controller>/comparisons/<id>.json)")
	_ = cmd.MarkFlagRequired("previous")
	_ = cmd.MarkFlagRequired("current")

	return cmd
}

type compareOpts struct {
	previousPath string
	currentPath  string
	outputFmt    string
	savePath     string
}

func runCompare(opts compareOpts) error {
	previous, err := assess.LoadRun(opts.previousPath)
	if err != nil {
		return fmt.Errorf("loading previous run: %w", err)
	}
	current, err := assess.LoadRun(opts.currentPath)
	if err != nil {
		return fmt.Errorf("loading current run: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Comparing %s against %s\n", current.ID, previous.ID)
	cmp := portfolio.CompareRuns(previous, current)

	savePath := opts.savePath
	if savePath == "" {
		savePath = filepath.Join(config.ComparisonDir(current.Controller), cmp.ID+".json")
	}
	if err := portfolio.SaveComparison(savePath, cmp); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save comparison: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Comparison saved: %s\n", savePath)
	}

	return render(os.Stdout, cmp, opts.outputFmt)
}
