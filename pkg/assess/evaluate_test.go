package assess

import (
	"math"
	"testing"

	"github.com/tierscope/tierscope/pkg/tier"
)

func latencyTable() ThresholdTable {
	return ThresholdTable{
		Cutoffs: map[tier.Tier]map[string]float64{
			tier.Platinum: {"responseTime": 2},
			tier.Gold:     {"responseTime": 5},
			tier.Silver:   {"responseTime": 10},
		},
		Directions: map[string]Direction{
			"responseTime": DecreasingIsBetter,
		},
	}
}

func TestEvaluateOverallGate(t *testing.T) {
	table := latencyTable()

	tests := []struct {
		name  string
		value float64
		want  tier.Tier
	}{
		{name: "fails platinum passes gold", value: 3, want: tier.Gold},
		{name: "passes platinum", value: 1, want: tier.Platinum},
		{name: "fails all cutoffs", value: 50, want: tier.Bronze},
		{name: "platinum boundary inclusive", value: 2, want: tier.Platinum},
		{name: "just over platinum boundary", value: 2.01, want: tier.Gold},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score := Evaluate("app-1", MetricSnapshot{"responseTime": tc.value}, table)
			if score.Overall != tc.want {
				t.Errorf("Overall = %s, want %s", score.Overall, tc.want)
			}
		})
	}
}

func TestEvaluateIncreasingBoundaryInclusive(t *testing.T) {
	table := ThresholdTable{
		Cutoffs: map[tier.Tier]map[string]float64{
			tier.Platinum: {"agentCoverage": 95},
			tier.Gold:     {"agentCoverage": 80},
			tier.Silver:   {"agentCoverage": 50},
		},
		Directions: map[string]Direction{
			"agentCoverage": IncreasingIsBetter,
		},
	}

	if got := Evaluate("app-1", MetricSnapshot{"agentCoverage": 95}, table).Overall; got != tier.Platinum {
		t.Errorf("coverage 95: Overall = %s, want platinum (boundary is inclusive)", got)
	}
	if got := Evaluate("app-1", MetricSnapshot{"agentCoverage": 94.9}, table).Overall; got != tier.Gold {
		t.Errorf("coverage 94.9: Overall = %s, want gold", got)
	}
}

func TestEvaluateAllOrNothingGate(t *testing.T) {
	// Platinum requires both metrics; failing one drops the entity to
	// the next tier even when the other is excellent.
	table := ThresholdTable{
		Cutoffs: map[tier.Tier]map[string]float64{
			tier.Platinum: {"responseTime": 2, "errorRate": 0.1},
			tier.Gold:     {"responseTime": 5, "errorRate": 1},
			tier.Silver:   {"responseTime": 10, "errorRate": 5},
		},
		Directions: map[string]Direction{
			"responseTime": DecreasingIsBetter,
			"errorRate":    DecreasingIsBetter,
		},
	}

	score := Evaluate("app-1", MetricSnapshot{"responseTime": 0.5, "errorRate": 0.5}, table)
	if score.Overall != tier.Gold {
		t.Errorf("Overall = %s, want gold (errorRate 0.5 fails the platinum gate)", score.Overall)
	}
	if score.PerMetric["responseTime"] != tier.Platinum {
		t.Errorf("PerMetric[responseTime] = %s, want platinum (per-metric view is ungated)", score.PerMetric["responseTime"])
	}
	if score.PerMetric["errorRate"] != tier.Gold {
		t.Errorf("PerMetric[errorRate] = %s, want gold", score.PerMetric["errorRate"])
	}
}

func TestEvaluateAbsentMetricPassesVacuously(t *testing.T) {
	// Platinum only constrains errorRate; responseTime is not in its
	// cutoff set and must not be evaluated for it.
	table := ThresholdTable{
		Cutoffs: map[tier.Tier]map[string]float64{
			tier.Platinum: {"errorRate": 0.1},
			tier.Gold:     {"responseTime": 5, "errorRate": 1},
			tier.Silver:   {"responseTime": 10, "errorRate": 5},
		},
		Directions: map[string]Direction{
			"responseTime": DecreasingIsBetter,
			"errorRate":    DecreasingIsBetter,
		},
	}

	score := Evaluate("app-1", MetricSnapshot{"responseTime": 100, "errorRate": 0.05}, table)
	if score.Overall != tier.Platinum {
		t.Errorf("Overall = %s, want platinum (responseTime has no platinum cutoff)", score.Overall)
	}
}

func TestEvaluateMissingAndNaNValuesFail(t *testing.T) {
	table := latencyTable()

	if got := Evaluate("app-1", MetricSnapshot{}, table).Overall; got != tier.Bronze {
		t.Errorf("missing value: Overall = %s, want bronze", got)
	}
	if got := Evaluate("app-1", MetricSnapshot{"responseTime": math.NaN()}, table).Overall; got != tier.Bronze {
		t.Errorf("NaN value: Overall = %s, want bronze", got)
	}
}

func TestEvaluatePerMetricAscending(t *testing.T) {
	table := latencyTable()

	tests := []struct {
		value float64
		want  tier.Tier
	}{
		{value: 1, want: tier.Platinum},
		{value: 4, want: tier.Gold},
		{value: 7, want: tier.Silver},
		{value: 11, want: tier.Bronze},
	}

	for _, tc := range tests {
		score := Evaluate("app-1", MetricSnapshot{"responseTime": tc.value}, table)
		if score.PerMetric["responseTime"] != tc.want {
			t.Errorf("responseTime %v: PerMetric = %s, want %s", tc.value, score.PerMetric["responseTime"], tc.want)
		}
	}
}

func TestValidateRejectsMissingDirection(t *testing.T) {
	table := ThresholdTable{
		Cutoffs: map[tier.Tier]map[string]float64{
			tier.Gold: {"responseTime": 5},
		},
	}
	if err := table.Validate(); err == nil {
		t.Error("Validate() = nil, want error for metric with no direction")
	}
}

func TestValidateRejectsBronzeCutoffs(t *testing.T) {
	table := ThresholdTable{
		Cutoffs: map[tier.Tier]map[string]float64{
			tier.Bronze: {"responseTime": 5},
		},
		Directions: map[string]Direction{
			"responseTime": DecreasingIsBetter,
		},
	}
	if err := table.Validate(); err == nil {
		t.Error("Validate() = nil, want error for bronze cutoffs")
	}
}

func TestValidateAcceptsWellFormedTable(t *testing.T) {
	if err := latencyTable().Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}
}
