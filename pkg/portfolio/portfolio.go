// Package portfolio aggregates per-entity scores and classified
// transitions into portfolio-level summaries: coverage, tier
// distribution, change counts, ranked focus areas and trend arrows.
// All operations are pure over supplied collections.
package portfolio

import (
	"math"
	"sort"

	"github.com/tierscope/tierscope/pkg/tier"
	"github.com/tierscope/tierscope/pkg/transition"
)

// CoverageTrendThreshold suppresses near-zero noise when comparing
// coverage percentages between runs, in percentage points.
const CoverageTrendThreshold = 0.5

// Rating pairs an entity with its overall tier. The tier may be empty
// or invalid when the entity was not rated.
type Rating struct {
	EntityID string    `json:"entity_id"`
	Tier     tier.Tier `json:"tier,omitempty"`
}

// Coverage is the rated fraction of a portfolio. Percent is nil when
// the portfolio is empty: "not available", never a division by zero.
type Coverage struct {
	Total   int      `json:"total"`
	Rated   int      `json:"rated"`
	Percent *float64 `json:"percent"`
}

// ComputeCoverage counts named entities and those holding a valid tier.
func ComputeCoverage(ratings []Rating) Coverage {
	var c Coverage
	for _, r := range ratings {
		if r.EntityID == "" {
			continue
		}
		c.Total++
		if r.Tier.Valid() {
			c.Rated++
		}
	}
	if c.Total > 0 {
		pct := round1(float64(c.Rated) / float64(c.Total) * 100)
		c.Percent = &pct
	}
	return c
}

// TierDistribution counts rated entities per tier. Invalid or missing
// tiers are not counted.
func TierDistribution(ratings []Rating) map[tier.Tier]int {
	dist := make(map[tier.Tier]int, len(tier.Order))
	for _, t := range tier.Order {
		dist[t] = 0
	}
	for _, r := range ratings {
		if r.Tier.Valid() {
			dist[r.Tier]++
		}
	}
	return dist
}

// TierPercentages derives per-tier percentages over the given total.
// Nil when total is zero.
func TierPercentages(dist map[tier.Tier]int, total int) map[tier.Tier]*float64 {
	pcts := make(map[tier.Tier]*float64, len(tier.Order))
	for _, t := range tier.Order {
		if total == 0 {
			pcts[t] = nil
			continue
		}
		pct := round1(float64(dist[t]) / float64(total) * 100)
		pcts[t] = &pct
	}
	return pcts
}

// ChangeCounts tallies classified transitions for one category.
type ChangeCounts struct {
	Upgraded   int `json:"upgraded"`
	Downgraded int `json:"downgraded"`
}

// CategoryChangeCounts counts upgraded and downgraded transitions in a
// category. Only transitions with both tiers known are bucketed.
func CategoryChangeCounts(transitions []transition.GradeTransition, category string) ChangeCounts {
	var counts ChangeCounts
	for _, tr := range transitions {
		if tr.Category != category || !tr.Rated() {
			continue
		}
		switch tr.Outcome {
		case transition.Upgraded:
			counts.Upgraded++
		case transition.Downgraded:
			counts.Downgraded++
		}
	}
	return counts
}

// RankRegressedCategories orders categories by downgraded count
// descending; ties keep the original category order.
func RankRegressedCategories(counts map[string]ChangeCounts, categoryOrder []string) []string {
	ranked := make([]string, len(categoryOrder))
	copy(ranked, categoryOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]].Downgraded > counts[ranked[j]].Downgraded
	})
	return ranked
}

// FocusList returns the top n most-regressed categories.
func FocusList(ranked []string, n int) []string {
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DeltaPercentagePoints is current minus previous, rounded to one
// decimal. Nil propagates: unknown on either side means unknown delta.
func DeltaPercentagePoints(previous, current *float64) *float64 {
	if previous == nil || current == nil {
		return nil
	}
	delta := round1(*current - *previous)
	return &delta
}

// Trend is a symbolic direction indicator.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// TrendArrow compares a current value against a previous one. A move
// smaller than thresholdPoints in either direction reads as flat; pass
// zero where any directional change matters. Unknown values read flat.
func TrendArrow(current, previous *float64, thresholdPoints float64) Trend {
	if current == nil || previous == nil {
		return TrendFlat
	}
	delta := *current - *previous
	switch {
	case delta >= thresholdPoints && delta > 0:
		return TrendUp
	case delta <= -thresholdPoints && delta < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// HeadlineTier picks the single tier describing a portfolio: the tier
// holding the most rated entities, ties broken in favor of the higher
// tier. An unrated portfolio reads bronze.
func HeadlineTier(dist map[tier.Tier]int) tier.Tier {
	rated := 0
	for _, t := range tier.Order {
		rated += dist[t]
	}
	if rated == 0 {
		return tier.Bronze
	}

	headline := tier.Bronze
	best := -1
	for _, t := range tier.Order {
		if dist[t] >= best {
			headline = t
			best = dist[t]
		}
	}
	return headline
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
