package portfolio

import (
	"time"

	"github.com/google/uuid"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/tier"
	"github.com/tierscope/tierscope/pkg/transition"
)

// Comparison is the classified difference between two assessment runs.
// Immutable once computed.
type Comparison struct {
	ID          string                       `json:"id"`
	PreviousRun string                       `json:"previous_run"`
	CurrentRun  string                       `json:"current_run"`
	Controller  string                       `json:"controller,omitempty"`
	Categories  []string                     `json:"categories"`
	Transitions []transition.GradeTransition `json:"transitions"`
	Counts      map[string]ChangeCounts      `json:"counts"` // per category
	Summary     Summary                      `json:"summary"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// Summary is the portfolio-level roll-up of a comparison.
type Summary struct {
	Coverage            Coverage               `json:"coverage"`
	PreviousCoverage    Coverage               `json:"previous_coverage"`
	CoverageDelta       *float64               `json:"coverage_delta"`
	CoverageTrend       Trend                  `json:"coverage_trend"`
	Distribution        map[tier.Tier]int      `json:"distribution"`
	Percentages         map[tier.Tier]*float64 `json:"percentages"`
	PreviousPercentages map[tier.Tier]*float64 `json:"previous_percentages"`
	TierDeltas          map[tier.Tier]*float64 `json:"tier_deltas"`
	TierTrends          map[tier.Tier]Trend    `json:"tier_trends"`
	Headline            tier.Tier              `json:"headline"`
	Upgraded            int                    `json:"upgraded"`
	Downgraded          int                    `json:"downgraded"`
	Unchanged           int                    `json:"unchanged"`
	FocusList           []string               `json:"focus_list"`
}

// ClassifyCategory derives transitions for every entity in one
// category of the current run. The same operation serves every
// category; nothing is specialized per area. Entities new in the
// current run carry only a current grade; entities that left the
// portfolio produce no transition.
func ClassifyCategory(previous, current *assess.Run, category string) []transition.GradeTransition {
	var transitions []transition.GradeTransition
	for _, entityID := range current.Entities(category) {
		curr := current.Scores[category][entityID].Overall
		prevScore, ok := previous.Scores[category][entityID]
		if !ok {
			currCopy := curr
			transitions = append(transitions, transition.GradeTransition{
				EntityID: entityID,
				Category: category,
				Current:  &currCopy,
				Outcome:  transition.Unchanged,
			})
			continue
		}
		g, err := transition.ClassifyTiers(entityID, category, prevScore.Overall, curr)
		if err != nil {
			// A stored run carrying an invalid tier is treated as an
			// unparseable row, not a fatal defect of the whole run.
			g = transition.GradeTransition{
				EntityID: entityID,
				Category: category,
				Outcome:  transition.Unparseable,
			}
		}
		transitions = append(transitions, g)
	}
	return transitions
}

// CompareRuns classifies every category of the current run against the
// previous one and rolls the results into a portfolio summary.
func CompareRuns(previous, current *assess.Run) *Comparison {
	cmp := &Comparison{
		ID:          uuid.New().String(),
		PreviousRun: previous.ID,
		CurrentRun:  current.ID,
		Controller:  current.Controller,
		Categories:  append([]string(nil), current.Categories...),
		Counts:      make(map[string]ChangeCounts, len(current.Categories)),
		GeneratedAt: time.Now().UTC(),
	}

	for _, category := range cmp.Categories {
		transitions := ClassifyCategory(previous, current, category)
		cmp.Transitions = append(cmp.Transitions, transitions...)
		cmp.Counts[category] = CategoryChangeCounts(transitions, category)
	}

	cmp.Summary = summarize(cmp, previous, current)
	return cmp
}

// summarize builds the portfolio roll-up from the overall category
// when the runs carry one, falling back to all categories merged.
func summarize(cmp *Comparison, previous, current *assess.Run) Summary {
	currRatings := overallRatings(current)
	prevRatings := overallRatings(previous)

	s := Summary{
		Coverage:         ComputeCoverage(currRatings),
		PreviousCoverage: ComputeCoverage(prevRatings),
		Distribution:     TierDistribution(currRatings),
		TierDeltas:       make(map[tier.Tier]*float64, len(tier.Order)),
		TierTrends:       make(map[tier.Tier]Trend, len(tier.Order)),
	}

	s.CoverageDelta = DeltaPercentagePoints(s.PreviousCoverage.Percent, s.Coverage.Percent)
	s.CoverageTrend = TrendArrow(s.Coverage.Percent, s.PreviousCoverage.Percent, CoverageTrendThreshold)

	s.Percentages = TierPercentages(s.Distribution, s.Coverage.Total)
	prevDist := TierDistribution(prevRatings)
	s.PreviousPercentages = TierPercentages(prevDist, s.PreviousCoverage.Total)
	for _, t := range tier.Order {
		s.TierDeltas[t] = DeltaPercentagePoints(s.PreviousPercentages[t], s.Percentages[t])
		s.TierTrends[t] = TrendArrow(s.Percentages[t], s.PreviousPercentages[t], 0)
	}

	s.Headline = HeadlineTier(s.Distribution)

	for _, tr := range cmp.Transitions {
		if !tr.Rated() {
			continue
		}
		switch tr.Outcome {
		case transition.Upgraded:
			s.Upgraded++
		case transition.Downgraded:
			s.Downgraded++
		case transition.Unchanged:
			s.Unchanged++
		}
	}

	ranked := RankRegressedCategories(cmp.Counts, focusCandidates(cmp.Categories))
	s.FocusList = FocusList(ranked, 2)
	return s
}

// overallRatings extracts the per-entity overall tiers used for
// portfolio coverage and distribution.
func overallRatings(run *assess.Run) []Rating {
	categories := []string{assess.CategoryOverall}
	if _, ok := run.Scores[assess.CategoryOverall]; !ok {
		categories = run.Categories
	}

	seen := make(map[string]bool)
	var ratings []Rating
	for _, category := range categories {
		for _, entityID := range run.Entities(category) {
			if len(categories) > 1 && seen[entityID] {
				continue
			}
			seen[entityID] = true
			ratings = append(ratings, Rating{
				EntityID: entityID,
				Tier:     run.Scores[category][entityID].Overall,
			})
		}
	}
	return ratings
}

// focusCandidates drops the roll-up category from focus ranking; the
// focus list names concrete areas to work on.
func focusCandidates(categories []string) []string {
	var out []string
	for _, c := range categories {
		if c == assess.CategoryOverall {
			continue
		}
		out = append(out, c)
	}
	return out
}
