// Package rule implements the deterministic rule path of the classification
// pipeline: condition matching and first-match-wins rule selection.
package rule

import (
	"slices"
	"strings"

	"github.com/sowonlabs/bunryu/internal/model"
)

// Matches reports whether a transaction satisfies every condition a rule
// specifies. Conditions combine with AND; a condition the rule omits places
// no constraint on the transaction. Pure function, no side effects.
func Matches(conditions model.RuleConditions, tx model.Transaction) bool {
	if len(conditions.MCCCodes) > 0 {
		if tx.MCCCode == "" || !slices.Contains(conditions.MCCCodes, tx.MCCCode) {
			return false
		}
	}

	if conditions.MerchantNameContains != "" {
		if tx.MerchantName == "" {
			return false
		}
		haystack := strings.ToLower(tx.MerchantName)
		needle := strings.ToLower(conditions.MerchantNameContains)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}

	if conditions.AmountMin != nil && tx.Amount < *conditions.AmountMin {
		return false
	}

	if conditions.AmountMax != nil && tx.Amount > *conditions.AmountMax {
		return false
	}

	return true
}
