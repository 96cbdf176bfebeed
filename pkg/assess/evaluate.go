package assess

import (
	"math"

	"github.com/tierscope/tierscope/pkg/tier"
)

// Evaluate computes the tiered score for one entity from one metric
// snapshot. Pure function of its inputs; the table is assumed to have
// passed Validate.
//
// The overall tier is decided by an all-or-nothing gate: candidate
// tiers are tried strictly descending (platinum, gold, silver), and a
// candidate wins only when every metric in its cutoff set clears its
// direction-aware comparison. Nothing passes means bronze. Scores are
// never averaged or weighted.
func Evaluate(entityID string, snap MetricSnapshot, table ThresholdTable) EntityScore {
	score := EntityScore{
		EntityID:  entityID,
		PerMetric: make(map[string]tier.Tier),
		Overall:   tier.Bronze,
	}

	for i := len(tier.Order) - 1; i >= 1; i-- {
		if tierPasses(snap, table, tier.Order[i]) {
			score.Overall = tier.Order[i]
			break
		}
	}

	for _, metric := range table.Metrics() {
		score.PerMetric[metric] = metricTier(snap, table, metric)
	}

	return score
}

// tierPasses reports whether every metric in the candidate tier's
// cutoff set clears its cutoff. A metric absent from the set is not
// evaluated for that tier and passes vacuously.
func tierPasses(snap MetricSnapshot, table ThresholdTable, candidate tier.Tier) bool {
	for metric, cutoff := range table.Cutoffs[candidate] {
		if !satisfies(metricValue(snap, metric), cutoff, table.Directions[metric]) {
			return false
		}
	}
	return true
}

// metricTier is the metric-level breakdown view: the highest tier the
// single metric individually clears, ungated by other metrics. Starts
// at bronze and upgrades through silver, gold, platinum until a cutoff
// fails.
func metricTier(snap MetricSnapshot, table ThresholdTable, metric string) tier.Tier {
	result := tier.Bronze
	value := metricValue(snap, metric)
	for i := 1; i < len(tier.Order); i++ {
		cutoff, ok := table.Cutoffs[tier.Order[i]][metric]
		if ok && !satisfies(value, cutoff, table.Directions[metric]) {
			break
		}
		result = tier.Order[i]
	}
	return result
}

// metricValue returns the raw value for a metric, or NaN when the
// snapshot does not carry it. NaN fails every comparison.
func metricValue(snap MetricSnapshot, metric string) float64 {
	value, ok := snap[metric]
	if !ok {
		return math.NaN()
	}
	return value
}
