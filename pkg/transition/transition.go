// Package transition classifies tier changes between two assessment
// runs. The primary path works on in-memory tiers; a best-effort text
// parser ingests the legacy "previous → current" cell format that
// exported reports carry.
package transition

import (
	"strings"

	"github.com/tierscope/tierscope/pkg/tier"
)

// Arrow is the glyph joining the previous and current tokens in the
// legacy text encoding.
const Arrow = "→"

// Outcome classifies a grade transition.
type Outcome string

const (
	Upgraded    Outcome = "upgraded"
	Downgraded  Outcome = "downgraded"
	Unchanged   Outcome = "unchanged"
	Unparseable Outcome = "unparseable"
)

// GradeTransition is the classified tier change for one entity in one
// category. Previous is nil when only a current grade is known; both
// are nil for unparseable input.
type GradeTransition struct {
	EntityID string     `json:"entity_id"`
	Category string     `json:"category"`
	Previous *tier.Tier `json:"previous,omitempty"`
	Current  *tier.Tier `json:"current,omitempty"`
	Outcome  Outcome    `json:"outcome"`
}

// Rated reports whether both tiers are known, making the transition
// eligible for upgrade/downgrade bucketing in aggregates.
func (g GradeTransition) Rated() bool {
	return g.Previous != nil && g.Current != nil
}

// ClassifyTiers classifies a transition from two in-memory tiers.
// Passing an invalid tier is a programmer error, reported as
// tier.InvalidTierError.
func ClassifyTiers(entityID, category string, previous, current tier.Tier) (GradeTransition, error) {
	cmp, err := tier.Compare(previous, current)
	if err != nil {
		return GradeTransition{}, err
	}
	g := GradeTransition{
		EntityID: entityID,
		Category: category,
		Previous: &previous,
		Current:  &current,
	}
	switch {
	case cmp < 0:
		g.Outcome = Upgraded
	case cmp > 0:
		g.Outcome = Downgraded
	default:
		g.Outcome = Unchanged
	}
	return g, nil
}

// Classify parses and classifies a legacy encoded transition cell.
// The cell is either a bare tier token (only the current grade is
// known) or "<previous> → <current> <trailing words>". Malformed
// input never returns an error; it yields an Unparseable transition
// so one bad report cell cannot abort a whole comparison.
func Classify(entityID, category, encoded string) GradeTransition {
	unparseable := GradeTransition{
		EntityID: entityID,
		Category: category,
		Outcome:  Unparseable,
	}

	parts := strings.Split(encoded, Arrow)
	switch len(parts) {
	case 1:
		// Bare token: no change recorded, only a current grade.
		current, err := tier.Parse(firstWord(parts[0]))
		if err != nil {
			return unparseable
		}
		return GradeTransition{
			EntityID: entityID,
			Category: category,
			Current:  &current,
			Outcome:  Unchanged,
		}
	case 2:
		previous, err := tier.Parse(firstWord(parts[0]))
		if err != nil {
			return unparseable
		}
		current, err := tier.Parse(firstWord(parts[1]))
		if err != nil {
			return unparseable
		}
		g, err := ClassifyTiers(entityID, category, previous, current)
		if err != nil {
			return unparseable
		}
		return g
	default:
		return unparseable
	}
}

// firstWord lower-cases a segment and returns its first
// whitespace-delimited word; trailing annotation text is discarded.
func firstWord(segment string) string {
	fields := strings.Fields(strings.ToLower(segment))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
