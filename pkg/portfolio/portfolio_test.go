package portfolio

import (
	"reflect"
	"testing"

	"github.com/tierscope/tierscope/pkg/tier"
	"github.com/tierscope/tierscope/pkg/transition"
)

func TestComputeCoverage(t *testing.T) {
	ratings := []Rating{
		{EntityID: "checkout", Tier: tier.Gold},
		{EntityID: "search", Tier: tier.Silver},
		{EntityID: "inventory"},                       // never rated
		{EntityID: "billing", Tier: tier.Tier("n/a")}, // invalid grade token
		{Tier: tier.Gold},                             // unnamed rows do not count
	}

	c := ComputeCoverage(ratings)
	if c.Total != 4 {
		t.Errorf("Total = %d, want 4", c.Total)
	}
	if c.Rated != 2 {
		t.Errorf("Rated = %d, want 2", c.Rated)
	}
	if c.Percent == nil || *c.Percent != 50.0 {
		t.Errorf("Percent = %v, want 50.0", c.Percent)
	}
}

func TestComputeCoverageEmptyPortfolio(t *testing.T) {
	c := ComputeCoverage(nil)
	if c.Total != 0 || c.Rated != 0 {
		t.Errorf("coverage = %+v, want zero counts", c)
	}
	if c.Percent != nil {
		t.Errorf("Percent = %v, want nil (not available)", *c.Percent)
	}
}

func TestTierDistributionAndPercentages(t *testing.T) {
	ratings := []Rating{
		{EntityID: "a", Tier: tier.Gold},
		{EntityID: "b", Tier: tier.Gold},
		{EntityID: "c", Tier: tier.Silver},
		{EntityID: "d"},
	}

	dist := TierDistribution(ratings)
	if dist[tier.Gold] != 2 || dist[tier.Silver] != 1 || dist[tier.Bronze] != 0 {
		t.Errorf("distribution = %v", dist)
	}

	pcts := TierPercentages(dist, 4)
	if pcts[tier.Gold] == nil || *pcts[tier.Gold] != 50.0 {
		t.Errorf("gold pct = %v, want 50.0", pcts[tier.Gold])
	}
	if pcts[tier.Silver] == nil || *pcts[tier.Silver] != 25.0 {
		t.Errorf("silver pct = %v, want 25.0", pcts[tier.Silver])
	}

	empty := TierPercentages(TierDistribution(nil), 0)
	for _, tr := range tier.Order {
		if empty[tr] != nil {
			t.Errorf("empty portfolio pct[%s] = %v, want nil", tr, *empty[tr])
		}
	}
}

func backendsTransitions(t *testing.T) []transition.GradeTransition {
	t.Helper()
	var out []transition.GradeTransition
	pairs := [][2]tier.Tier{
		{tier.Silver, tier.Gold},
		{tier.Gold, tier.Silver},
		{tier.Platinum, tier.Platinum},
	}
	for i, p := range pairs {
		g, err := transition.ClassifyTiers("app", "Backends", p[0], p[1])
		if err != nil {
			t.Fatalf("ClassifyTiers(%d): %v", i, err)
		}
		out = append(out, g)
	}
	return out
}

func TestCategoryChangeCounts(t *testing.T) {
	counts := CategoryChangeCounts(backendsTransitions(t), "Backends")
	if counts.Upgraded != 1 {
		t.Errorf("Upgraded = %d, want 1", counts.Upgraded)
	}
	if counts.Downgraded != 1 {
		t.Errorf("Downgraded = %d, want 1", counts.Downgraded)
	}
}

func TestCategoryChangeCountsSkipsUnrated(t *testing.T) {
	transitions := append(backendsTransitions(t), transition.GradeTransition{
		EntityID: "mystery",
		Category: "Backends",
		Outcome:  transition.Unparseable,
	})
	counts := CategoryChangeCounts(transitions, "Backends")
	if counts.Upgraded != 1 || counts.Downgraded != 1 {
		t.Errorf("counts = %+v, want unparseable rows excluded", counts)
	}
}

func TestRankRegressedCategories(t *testing.T) {
	order := []string{"HealthRules", "Backends", "Dashboards"}
	counts := map[string]ChangeCounts{
		"HealthRules": {Downgraded: 0},
		"Backends":    {Upgraded: 1, Downgraded: 1},
		"Dashboards":  {Downgraded: 0},
	}

	ranked := RankRegressedCategories(counts, order)
	if ranked[0] != "Backends" {
		t.Errorf("ranked[0] = %s, want Backends", ranked[0])
	}
	// Ties keep the original category order.
	if ranked[1] != "HealthRules" || ranked[2] != "Dashboards" {
		t.Errorf("tie order = %v, want [Backends HealthRules Dashboards]", ranked)
	}

	focus := FocusList(ranked, 2)
	if !reflect.DeepEqual(focus, []string{"Backends", "HealthRules"}) {
		t.Errorf("focus = %v", focus)
	}
}

func TestDeltaPercentagePoints(t *testing.T) {
	prev, curr := 72.4, 74.19
	got := DeltaPercentagePoints(&prev, &curr)
	if got == nil || *got != 1.8 {
		t.Errorf("delta = %v, want 1.8", got)
	}

	if DeltaPercentagePoints(nil, &curr) != nil {
		t.Error("delta with nil previous: want nil")
	}
	if DeltaPercentagePoints(&prev, nil) != nil {
		t.Error("delta with nil current: want nil")
	}
}

func TestTrendArrow(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		curr      *float64
		prev      *float64
		threshold float64
		want      Trend
	}{
		{name: "up", curr: f(80), prev: f(70), threshold: 0, want: TrendUp},
		{name: "down", curr: f(60), prev: f(70), threshold: 0, want: TrendDown},
		{name: "equal is flat at zero threshold", curr: f(70), prev: f(70), threshold: 0, want: TrendFlat},
		{name: "noise below threshold is flat", curr: f(70.4), prev: f(70), threshold: 0.5, want: TrendFlat},
		{name: "move at threshold registers", curr: f(70.5), prev: f(70), threshold: 0.5, want: TrendUp},
		{name: "drop at threshold registers", curr: f(69.5), prev: f(70), threshold: 0.5, want: TrendDown},
		{name: "both unknown is flat", curr: nil, prev: nil, threshold: 0.5, want: TrendFlat},
		{name: "one unknown is flat", curr: f(70), prev: nil, threshold: 0, want: TrendFlat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TrendArrow(tc.curr, tc.prev, tc.threshold); got != tc.want {
				t.Errorf("TrendArrow = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestHeadlineTier(t *testing.T) {
	tests := []struct {
		name string
		dist map[tier.Tier]int
		want tier.Tier
	}{
		{
			name: "clear majority",
			dist: map[tier.Tier]int{tier.Silver: 7, tier.Gold: 2},
			want: tier.Silver,
		},
		{
			name: "tie prefers higher tier",
			dist: map[tier.Tier]int{tier.Gold: 5, tier.Silver: 5},
			want: tier.Gold,
		},
		{
			name: "no rated entities reads bronze",
			dist: map[tier.Tier]int{},
			want: tier.Bronze,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HeadlineTier(tc.dist); got != tc.want {
				t.Errorf("HeadlineTier = %s, want %s", got, tc.want)
			}
		})
	}
}
