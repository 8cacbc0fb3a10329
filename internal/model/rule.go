package model

import "time"

// RuleConditions describes the conditions of a classification rule. All
// specified fields must hold simultaneously; an absent field is a wildcard.
type RuleConditions struct {
	AmountMin            *float64 `json:"amount_min,omitempty"`
	AmountMax            *float64 `json:"amount_max,omitempty"`
	MerchantNameContains string   `json:"merchant_name_contains,omitempty"`
	MCCCodes             []string `json:"mcc_codes,omitempty"`
}

// ClassificationRule maps transaction attributes to a target account.
// Rules are evaluated in priority order, higher first; ties break on the
// order the caller supplies (persisted insertion order in practice).
type ClassificationRule struct {
	CreatedAt  time.Time      `json:"created_at,omitempty"`
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Conditions RuleConditions `json:"conditions"`
	Account    Account        `json:"account"`
	Priority   int            `json:"priority"`
	IsActive   bool           `json:"is_active"`
}
