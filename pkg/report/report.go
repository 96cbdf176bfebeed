// Package report defines output rendering for Tierscope comparisons.
// Implementations handle different output targets: terminal, markdown,
// JSON.
package report

import (
	"io"

	"github.com/tierscope/tierscope/pkg/portfolio"
)

// Renderer produces formatted output from a Comparison.
type Renderer interface {
	// Render writes the formatted comparison to the writer.
	Render(w io.Writer, cmp *portfolio.Comparison) error
}

// arrowGlyph maps a trend to its display glyph.
func arrowGlyph(t portfolio.Trend) string {
	switch t {
	case portfolio.TrendUp:
		return "↑"
	case portfolio.TrendDown:
		return "↓"
	default:
		return "→"
	}
}
