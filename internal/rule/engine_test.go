package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sowonlabs/bunryu/internal/model"
)

func makeRule(name, accountCode string, priority int, conditions model.RuleConditions) model.ClassificationRule {
	return model.ClassificationRule{
		Name:       name,
		Priority:   priority,
		Conditions: conditions,
		Account:    model.Account{Code: accountCode, Name: name, IsActive: true},
		IsActive:   true,
	}
}

func TestMatch_HigherPriorityWins(t *testing.T) {
	// Both rules match; the caller supplies them priority-sorted and the
	// engine must return the first.
	tx := model.Transaction{MCCCode: "5814", Amount: 6500}
	rules := []model.ClassificationRule{
		makeRule("high", "52700", 10, model.RuleConditions{MCCCodes: []string{"5814"}}),
		makeRule("low", "51100", 5, model.RuleConditions{MCCCodes: []string{"5814"}}),
	}

	result := Match(rules, tx)
	require.True(t, result.Matched)
	assert.Equal(t, "high", result.Rule.Name)
	assert.Equal(t, "52700", result.Account.Code)
}

func TestMatch_EqualPriorityTracksInputOrder(t *testing.T) {
	tx := model.Transaction{MCCCode: "5812", Amount: 80000}
	a := makeRule("rule-a", "51400", 9, model.RuleConditions{MCCCodes: []string{"5812"}})
	b := makeRule("rule-b", "51100", 9, model.RuleConditions{MCCCodes: []string{"5812"}})

	result := Match([]model.ClassificationRule{a, b}, tx)
	require.True(t, result.Matched)
	assert.Equal(t, "rule-a", result.Rule.Name)

	// Permute the input: the winner must track position, not content.
	result = Match([]model.ClassificationRule{b, a}, tx)
	require.True(t, result.Matched)
	assert.Equal(t, "rule-b", result.Rule.Name)
}

func TestMatch_SkipsInactiveRules(t *testing.T) {
	tx := model.Transaction{MCCCode: "5814", Amount: 6500}
	inactive := makeRule("inactive", "52700", 10, model.RuleConditions{MCCCodes: []string{"5814"}})
	inactive.IsActive = false
	active := makeRule("active", "51100", 5, model.RuleConditions{MCCCodes: []string{"5814"}})

	result := Match([]model.ClassificationRule{inactive, active}, tx)
	require.True(t, result.Matched)
	assert.Equal(t, "active", result.Rule.Name)
}

func TestMatch_NoMatchIsNotAnError(t *testing.T) {
	tx := model.Transaction{MCCCode: "9999", Amount: 100}
	rules := []model.ClassificationRule{
		makeRule("cafe", "52700", 10, model.RuleConditions{MCCCodes: []string{"5814"}}),
	}

	result := Match(rules, tx)
	assert.False(t, result.Matched)
	assert.Nil(t, result.Rule)
	assert.Nil(t, result.Account)
}

func TestMatch_EmptyRuleSet(t *testing.T) {
	result := Match(nil, model.Transaction{Amount: 100})
	assert.False(t, result.Matched)
}
