package report

import (
	"fmt"
	"io"
	"os"

	"github.com/tierscope/tierscope/pkg/portfolio"
	"github.com/tierscope/tierscope/pkg/tier"
)

// TerminalRenderer renders a Comparison as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func tierColor(t tier.Tier) string {
	if noColor() {
		return ""
	}
	switch t {
	case tier.Platinum:
		return colorCyan
	case tier.Gold:
		return colorYellow
	case tier.Silver:
		return colorGreen
	case tier.Bronze:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, cmp *portfolio.Comparison) error {
	s := cmp.Summary

	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Tierscope: %s portfolio %s",
			colored(string(s.Headline), tierColor(s.Headline)),
			arrowGlyph(s.CoverageTrend))))
	fmt.Fprintf(w, "%s\n\n", dim(fmt.Sprintf("comparing %s against %s", cmp.CurrentRun, cmp.PreviousRun)))

	// Coverage
	fmt.Fprintf(w, "Coverage: %d/%d rated (%s) %s %s\n\n",
		s.Coverage.Rated, s.Coverage.Total,
		fmtPct(s.Coverage.Percent), arrowGlyph(s.CoverageTrend), fmtDelta(s.CoverageDelta))

	// Tier distribution
	fmt.Fprintln(w, "Tiers:")
	for i := len(tier.Order) - 1; i >= 0; i-- {
		t := tier.Order[i]
		fmt.Fprintf(w, "  %s %-10s %3d  (%s) %s %s\n",
			colored("●", tierColor(t)), t, s.Distribution[t],
			fmtPct(s.Percentages[t]), arrowGlyph(s.TierTrends[t]), fmtDelta(s.TierDeltas[t]))
	}
	fmt.Fprintln(w)

	// Changes
	fmt.Fprintf(w, "Changes: %d upgraded / %d downgraded / %d unchanged\n\n",
		s.Upgraded, s.Downgraded, s.Unchanged)

	hasChanges := false
	for _, category := range cmp.Categories {
		counts := cmp.Counts[category]
		if counts.Upgraded == 0 && counts.Downgraded == 0 {
			continue
		}
		if !hasChanges {
			fmt.Fprintln(w, "By category:")
			hasChanges = true
		}
		fmt.Fprintf(w, "  %-24s ↑ %d  ↓ %d\n", category, counts.Upgraded, counts.Downgraded)
	}
	if hasChanges {
		fmt.Fprintln(w)
	}

	// Focus list
	if len(s.FocusList) > 0 {
		fmt.Fprintf(w, "Focus next: %s\n", bold(joinComma(s.FocusList)))
	}

	return nil
}

// fmtPct formats a nullable percentage; unknown reads "n/a".
func fmtPct(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *p)
}

// fmtDelta formats a nullable percentage-point delta with sign.
func fmtDelta(d *float64) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%+.1f pp", *d)
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
