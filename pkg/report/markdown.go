package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/tierscope/tierscope/pkg/portfolio"
	"github.com/tierscope/tierscope/pkg/tier"
)

// MarkdownRenderer produces a markdown summary of a Comparison,
// suitable for pasting into a review or posting by a bot.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, cmp *portfolio.Comparison) error {
	_, err := io.WriteString(w, BuildMarkdownSummary(cmp))
	return err
}

// BuildMarkdownSummary renders the key callouts, per-category change
// table and focus list as markdown.
func BuildMarkdownSummary(cmp *portfolio.Comparison) string {
	var sb strings.Builder
	s := cmp.Summary

	sb.WriteString(fmt.Sprintf("## Tierscope: %s portfolio %s\n\n", s.Headline, arrowGlyph(s.CoverageTrend)))
	sb.WriteString(fmt.Sprintf("_Comparing run `%s` against `%s`._\n\n", cmp.CurrentRun, cmp.PreviousRun))

	// Key callouts
	sb.WriteString("### Key callouts\n\n")
	sb.WriteString("| Indicator | Previous | Current | Delta | Trend |\n")
	sb.WriteString("|-----------|----------|---------|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Coverage | %s | %s | %s | %s |\n",
		fmtPct(s.PreviousCoverage.Percent), fmtPct(s.Coverage.Percent),
		fmtCell(s.CoverageDelta), arrowGlyph(s.CoverageTrend)))
	for i := len(tier.Order) - 1; i >= 0; i-- {
		t := tier.Order[i]
		sb.WriteString(fmt.Sprintf("| %s %% | %s | %s | %s | %s |\n",
			t, fmtPct(s.PreviousPercentages[t]), fmtPct(s.Percentages[t]),
			fmtCell(s.TierDeltas[t]), arrowGlyph(s.TierTrends[t])))
	}
	sb.WriteString("\n")

	// Changes
	sb.WriteString("### Changes by category\n\n")
	sb.WriteString("| Category | Upgraded | Downgraded |\n")
	sb.WriteString("|----------|----------|------------|\n")
	for _, category := range cmp.Categories {
		counts := cmp.Counts[category]
		sb.WriteString(fmt.Sprintf("| %s | %d | %d |\n", category, counts.Upgraded, counts.Downgraded))
	}
	sb.WriteString("\n")

	if len(s.FocusList) > 0 {
		sb.WriteString(fmt.Sprintf("**Focus next:** %s\n", joinComma(s.FocusList)))
	}

	return sb.String()
}

// fmtCell formats a nullable delta for a markdown cell.
func fmtCell(d *float64) string {
	if d == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f", *d)
}
