// Package assess implements the Tierscope threshold evaluator.
// It converts raw per-entity metric values into tiered maturity scores
// against a configured threshold table.
package assess

import (
	"fmt"
	"math"
	"sort"

	"github.com/tierscope/tierscope/pkg/tier"
)

// Direction states whether a higher or lower metric value is better.
// It is a per-metric attribute, invariant across tiers.
type Direction string

const (
	// IncreasingIsBetter: the value must be >= the cutoff to qualify.
	IncreasingIsBetter Direction = "increasing"
	// DecreasingIsBetter: the value must be <= the cutoff to qualify.
	DecreasingIsBetter Direction = "decreasing"
)

// MetricSnapshot maps metric-id to a raw numeric value for one entity
// at one point in time.
type MetricSnapshot map[string]float64

// ThresholdTable holds the per-tier numeric cutoffs and per-metric
// directions for one assessment category. Bronze has no cutoffs; it is
// the floor tier.
type ThresholdTable struct {
	Cutoffs    map[tier.Tier]map[string]float64 `json:"cutoffs"`
	Directions map[string]Direction             `json:"directions"`
}

// Validate checks the table for configuration defects: a cutoff
// referencing a metric with no declared direction, an unknown
// direction, or cutoffs declared for bronze. These are operator
// errors and must fail fast at load time.
func (t ThresholdTable) Validate() error {
	for tr, cutoffs := range t.Cutoffs {
		if !tr.Valid() {
			return fmt.Errorf("threshold table: unknown tier %q", tr)
		}
		if tr == tier.Bronze {
			return fmt.Errorf("threshold table: bronze is the floor tier and takes no cutoffs")
		}
		for metric := range cutoffs {
			dir, ok := t.Directions[metric]
			if !ok {
				return fmt.Errorf("threshold table: metric %q has a %s cutoff but no direction", metric, tr)
			}
			if dir != IncreasingIsBetter && dir != DecreasingIsBetter {
				return fmt.Errorf("threshold table: metric %q has unknown direction %q", metric, dir)
			}
		}
	}
	return nil
}

// Metrics returns the sorted union of metric-ids across all tier
// cutoff sets.
func (t ThresholdTable) Metrics() []string {
	seen := make(map[string]bool)
	for _, cutoffs := range t.Cutoffs {
		for metric := range cutoffs {
			seen[metric] = true
		}
	}
	metrics := make([]string, 0, len(seen))
	for metric := range seen {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)
	return metrics
}

// satisfies reports whether a value clears a cutoff under the given
// direction. Boundaries are inclusive. NaN never passes.
func satisfies(value, cutoff float64, dir Direction) bool {
	if math.IsNaN(value) {
		return false
	}
	switch dir {
	case DecreasingIsBetter:
		return value <= cutoff
	case IncreasingIsBetter:
		return value >= cutoff
	default:
		return false
	}
}

// EntityScore is one entity's result for one run.
// Immutable once computed.
type EntityScore struct {
	EntityID  string               `json:"entity_id"`
	PerMetric map[string]tier.Tier `json:"per_metric"`
	Overall   tier.Tier            `json:"overall"`
}
