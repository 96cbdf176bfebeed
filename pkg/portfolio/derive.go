package portfolio

import (
	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/tier"
)

// DeriveOverall fills a run's roll-up category from its area scores:
// each entity's overall grade is the tier holding the most of its area
// ratings, ties broken in favor of the higher tier. Runs that already
// carry a roll-up category are left untouched.
func DeriveOverall(run *assess.Run) {
	if _, ok := run.Scores[assess.CategoryOverall]; ok {
		return
	}

	perEntity := make(map[string]map[tier.Tier]int)
	for _, category := range run.Categories {
		for _, entityID := range run.Entities(category) {
			if perEntity[entityID] == nil {
				perEntity[entityID] = make(map[tier.Tier]int, len(tier.Order))
			}
			perEntity[entityID][run.Scores[category][entityID].Overall]++
		}
	}
	if len(perEntity) == 0 {
		return
	}

	for entityID, dist := range perEntity {
		run.Add(assess.CategoryOverall, assess.EntityScore{
			EntityID: entityID,
			Overall:  HeadlineTier(dist),
		})
	}
	run.Categories = append(run.Categories, assess.CategoryOverall)
}
