package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tierscope/tierscope/pkg/portfolio"
	"github.com/tierscope/tierscope/pkg/report"
)

func newReportCmd() *cobra.Command {
	var (
		comparisonPath string
		outputFmt      string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Re-render a saved comparison",
		Long:  `Loads a stored comparison and renders it for a new target without recomputing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := portfolio.LoadComparison(comparisonPath)
			if err != nil {
				return fmt.Errorf("loading comparison: %w", err)
			}
			return render(os.Stdout, cmp, outputFmt)
		},
	}

	cmd.Flags().StringVar(&comparisonPath, "comparison", "", "Comparison file (required)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, markdown, json or insights")
	_ = cmd.MarkFlagRequired("comparison")

	return cmd
}

// render writes a comparison in the requested format.
func render(w io.Writer, cmp *portfolio.Comparison, format string) error {
	var renderer report.Renderer
	switch format {
	case "markdown":
		renderer = &report.MarkdownRenderer{}
	case "json":
		renderer = &report.JSONRenderer{}
	case "insights":
		renderer = &report.InsightsRenderer{}
	default:
		renderer = &report.TerminalRenderer{}
	}
	if err := renderer.Render(w, cmp); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}
