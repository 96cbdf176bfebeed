package assess

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// CategoryOverall is the roll-up category used for portfolio-level
// summaries when present in a run.
const CategoryOverall = "OverallAssessment"

// DefaultCategories lists the assessment areas in report order.
func DefaultCategories() []string {
	return []string{
		"AppAgents",
		"MachineAgents",
		"BusinessTransactions",
		"Backends",
		"OverheadSettings",
		"ServiceEndpoints",
		"ErrorConfiguration",
		"HealthRules",
		"DataCollectors",
		"Dashboards",
		CategoryOverall,
	}
}

// Run is one complete assessment run: per-category, per-entity scores
// at a point in time. Runs are immutable once created.
type Run struct {
	ID          string                            `json:"id"`
	Controller  string                            `json:"controller,omitempty"`
	Categories  []string                          `json:"categories"` // report order
	Scores      map[string]map[string]EntityScore `json:"scores"`     // category -> entity -> score
	GeneratedAt time.Time                         `json:"generated_at"`
}

// NewRun creates an empty run with a fresh ID.
func NewRun(controller string, categories []string) *Run {
	return &Run{
		ID:          uuid.New().String(),
		Controller:  controller,
		Categories:  categories,
		Scores:      make(map[string]map[string]EntityScore),
		GeneratedAt: time.Now().UTC(),
	}
}

// Add records an entity's score under a category.
func (r *Run) Add(category string, score EntityScore) {
	if r.Scores[category] == nil {
		r.Scores[category] = make(map[string]EntityScore)
	}
	r.Scores[category][score.EntityID] = score
}

// Entities returns the sorted entity IDs scored under a category.
func (r *Run) Entities(category string) []string {
	ids := make([]string, 0, len(r.Scores[category]))
	for id := range r.Scores[category] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EvaluateAll scores every entity in every category of the input and
// returns a new run. Entities are independent; evaluation order does
// not affect results. Every input category must have a threshold
// table: grading against an empty table would pass every tier gate
// vacuously and award platinum, so an unconfigured category is an
// error, not a grade.
func EvaluateAll(controller string, input map[string]map[string]MetricSnapshot, tables map[string]ThresholdTable) (*Run, error) {
	categories := make([]string, 0, len(input))
	for category := range input {
		if _, ok := tables[category]; !ok {
			return nil, fmt.Errorf("no threshold table configured for category %q", category)
		}
		categories = append(categories, category)
	}
	sort.Strings(categories)

	run := NewRun(controller, categories)
	for _, category := range categories {
		table := tables[category]
		for entityID, snap := range input[category] {
			run.Add(category, Evaluate(entityID, snap, table))
		}
	}
	return run, nil
}
