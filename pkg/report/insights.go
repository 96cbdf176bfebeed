package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/tierscope/tierscope/pkg/portfolio"
	"github.com/tierscope/tierscope/pkg/tier"
)

// InsightsPayload is the machine-readable summary of a comparison,
// consumed by downstream dashboards.
type InsightsPayload struct {
	Meta       InsightsMeta               `json:"meta"`
	Coverage   InsightsCoverage           `json:"coverage"`
	Overall    InsightsOverall            `json:"overall"`
	Tiers      map[tier.Tier]InsightsTier `json:"tiers"`
	Categories []InsightsCategory         `json:"categories"`
	FocusAreas []string                   `json:"focus_areas"`
}

type InsightsMeta struct {
	GeneratedAt time.Time `json:"generated_at"`
	PreviousRun string    `json:"previous_run"`
	CurrentRun  string    `json:"current_run"`
	Controller  string    `json:"controller,omitempty"`
	Headline    tier.Tier `json:"headline"`
}

type InsightsCoverage struct {
	Total       int             `json:"total"`
	Rated       int             `json:"rated"`
	Percent     *float64        `json:"percent"`
	DeltaPoints *float64        `json:"delta_points"`
	Trend       portfolio.Trend `json:"trend"`
}

// InsightsOverall summarizes transition counts across the portfolio.
// Result is "Increase" when upgrades outnumber downgrades, "Decrease"
// for the opposite, "Even" otherwise.
type InsightsOverall struct {
	Upgraded   int    `json:"upgraded"`
	Downgraded int    `json:"downgraded"`
	Unchanged  int    `json:"unchanged"`
	Result     string `json:"result"`
}

type InsightsTier struct {
	Count       int             `json:"count"`
	Percent     *float64        `json:"percent"`
	DeltaPoints *float64        `json:"delta_points"`
	Trend       portfolio.Trend `json:"trend"`
}

type InsightsCategory struct {
	Category   string `json:"category"`
	Upgraded   int    `json:"upgraded"`
	Downgraded int    `json:"downgraded"`
}

// BuildInsights assembles the payload from a comparison.
func BuildInsights(cmp *portfolio.Comparison) InsightsPayload {
	s := cmp.Summary

	payload := InsightsPayload{
		Meta: InsightsMeta{
			GeneratedAt: cmp.GeneratedAt,
			PreviousRun: cmp.PreviousRun,
			CurrentRun:  cmp.CurrentRun,
			Controller:  cmp.Controller,
			Headline:    s.Headline,
		},
		Coverage: InsightsCoverage{
			Total:       s.Coverage.Total,
			Rated:       s.Coverage.Rated,
			Percent:     s.Coverage.Percent,
			DeltaPoints: s.CoverageDelta,
			Trend:       s.CoverageTrend,
		},
		Overall: InsightsOverall{
			Upgraded:   s.Upgraded,
			Downgraded: s.Downgraded,
			Unchanged:  s.Unchanged,
			Result:     overallResult(s.Upgraded, s.Downgraded),
		},
		Tiers:      make(map[tier.Tier]InsightsTier, len(tier.Order)),
		FocusAreas: s.FocusList,
	}

	for _, t := range tier.Order {
		payload.Tiers[t] = InsightsTier{
			Count:       s.Distribution[t],
			Percent:     s.Percentages[t],
			DeltaPoints: s.TierDeltas[t],
			Trend:       s.TierTrends[t],
		}
	}

	for _, category := range cmp.Categories {
		counts := cmp.Counts[category]
		payload.Categories = append(payload.Categories, InsightsCategory{
			Category:   category,
			Upgraded:   counts.Upgraded,
			Downgraded: counts.Downgraded,
		})
	}

	return payload
}

func overallResult(upgraded, downgraded int) string {
	switch {
	case upgraded > downgraded:
		return "Increase"
	case downgraded > upgraded:
		return "Decrease"
	default:
		return "Even"
	}
}

// InsightsRenderer marshals the insights payload to indented JSON.
type InsightsRenderer struct{}

func (r *InsightsRenderer) Render(w io.Writer, cmp *portfolio.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildInsights(cmp))
}

// JSONRenderer marshals the raw Comparison to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, cmp *portfolio.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cmp)
}
