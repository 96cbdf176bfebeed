// Package tier defines the ordered maturity-tier vocabulary for Tierscope.
// These types are the shared vocabulary across all modules.
// Every ordinal decision in the system goes through Order; no caller
// re-declares the ranking.
package tier

import "fmt"

// Tier is a maturity grade for a monitored entity.
type Tier string

const (
	Bronze   Tier = "bronze"
	Silver   Tier = "silver"
	Gold     Tier = "gold"
	Platinum Tier = "platinum"
)

// Order is the canonical tier ranking, lowest first. Immutable.
var Order = [4]Tier{Bronze, Silver, Gold, Platinum}

var ranks = map[Tier]int{
	Bronze:   0,
	Silver:   1,
	Gold:     2,
	Platinum: 3,
}

// InvalidTierError reports a token outside the fixed tier vocabulary.
// Callers that parse free-text grades detect it with errors.As.
type InvalidTierError struct {
	Token string
}

func (e *InvalidTierError) Error() string {
	return fmt.Sprintf("invalid tier token %q (expected one of bronze, silver, gold, platinum)", e.Token)
}

// Parse validates a token against the tier vocabulary. The token must
// already be trimmed and lower-cased by the caller.
func Parse(token string) (Tier, error) {
	t := Tier(token)
	if _, ok := ranks[t]; !ok {
		return "", &InvalidTierError{Token: token}
	}
	return t, nil
}

// Valid reports whether t is one of the four known tiers.
func (t Tier) Valid() bool {
	_, ok := ranks[t]
	return ok
}

// IndexOf returns the ordinal rank of a tier (bronze=0 .. platinum=3).
func IndexOf(t Tier) (int, error) {
	rank, ok := ranks[t]
	if !ok {
		return 0, &InvalidTierError{Token: string(t)}
	}
	return rank, nil
}

// Compare returns -1 if a ranks below b, 0 if equal, +1 if above.
// Comparison is ordinal, never lexical.
func Compare(a, b Tier) (int, error) {
	ra, err := IndexOf(a)
	if err != nil {
		return 0, err
	}
	rb, err := IndexOf(b)
	if err != nil {
		return 0, err
	}
	switch {
	case ra < rb:
		return -1, nil
	case ra > rb:
		return 1, nil
	default:
		return 0, nil
	}
}
