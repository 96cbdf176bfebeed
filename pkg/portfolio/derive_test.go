package portfolio

import (
	"testing"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/tier"
)

func TestDeriveOverall(t *testing.T) {
	run := assess.NewRun("prod", []string{"Backends", "HealthRules", "Dashboards", "AppAgents"})
	add := func(category, entity string, tr tier.Tier) {
		run.Add(category, assess.EntityScore{EntityID: entity, Overall: tr})
	}
	// checkout: gold, gold, silver, silver -> tie, higher tier wins
	add("Backends", "checkout", tier.Gold)
	add("HealthRules", "checkout", tier.Gold)
	add("Dashboards", "checkout", tier.Silver)
	add("AppAgents", "checkout", tier.Silver)
	// search: clear silver majority
	add("Backends", "search", tier.Silver)
	add("HealthRules", "search", tier.Silver)
	add("Dashboards", "search", tier.Silver)
	add("AppAgents", "search", tier.Platinum)

	DeriveOverall(run)

	overall := run.Scores[assess.CategoryOverall]
	if overall["checkout"].Overall != tier.Gold {
		t.Errorf("checkout overall = %s, want gold (tie prefers higher)", overall["checkout"].Overall)
	}
	if overall["search"].Overall != tier.Silver {
		t.Errorf("search overall = %s, want silver", overall["search"].Overall)
	}
	last := run.Categories[len(run.Categories)-1]
	if last != assess.CategoryOverall {
		t.Errorf("roll-up category not appended, categories = %v", run.Categories)
	}

	// Re-deriving must not double-append or overwrite.
	DeriveOverall(run)
	count := 0
	for _, c := range run.Categories {
		if c == assess.CategoryOverall {
			count++
		}
	}
	if count != 1 {
		t.Errorf("roll-up category appended %d times, want 1", count)
	}
}
