package rule

import "github.com/sowonlabs/bunryu/internal/model"

// MatchResult is the outcome of evaluating a transaction against the rule set.
type MatchResult struct {
	Rule    *model.ClassificationRule
	Account *model.Account
	Matched bool
}

// Match returns the first rule whose conditions match the transaction.
//
// The caller supplies rules already filtered to active and sorted by priority
// descending; ties among equal priority resolve to whichever rule appears
// first in the given order. Inactive rules never match even if the caller
// forgot to filter them out. No match is not an error.
func Match(rules []model.ClassificationRule, tx model.Transaction) MatchResult {
	for i := range rules {
		r := &rules[i]
		if !r.IsActive {
			continue
		}
		if Matches(r.Conditions, tx) {
			return MatchResult{Matched: true, Rule: r, Account: &r.Account}
		}
	}
	return MatchResult{}
}
