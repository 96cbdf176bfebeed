package transition

import (
	"fmt"

	"github.com/tierscope/tierscope/pkg/tier"
)

// Encode renders the canonical legacy cell for a tier pair, e.g.
// "gold → platinum (Upgraded)". The annotation word is derived from
// ordinal comparison so every category uses the same vocabulary.
func Encode(previous, current tier.Tier) (string, error) {
	cmp, err := tier.Compare(previous, current)
	if err != nil {
		return "", err
	}
	if cmp == 0 {
		return string(current), nil
	}
	word := "Upgraded"
	if cmp > 0 {
		word = "Downgraded"
	}
	return fmt.Sprintf("%s %s %s (%s)", previous, Arrow, current, word), nil
}
