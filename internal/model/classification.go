package model

import "time"

// Method records which path produced a classification.
type Method string

// Classification methods.
const (
	MethodRule Method = "rule"
	MethodAI   Method = "ai"
)

// ClassifyResult is the outcome of classifying a single transaction.
type ClassifyResult struct {
	AccountCode string  `json:"account_code"`
	AccountName string  `json:"account_name"`
	Reason      string  `json:"reason"`
	Method      Method  `json:"method,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// ConfirmedExample is a denormalized snapshot of a previously confirmed
// classification, supplied to the model as few-shot context.
type ConfirmedExample struct {
	MerchantName string  `json:"merchant_name"`
	MCCCode      string  `json:"mcc_code"`
	AccountCode  string  `json:"account_code"`
	AccountName  string  `json:"account_name"`
	Amount       float64 `json:"amount"`
}

// PromptTemplates is the editable system/user prompt pair. The JSON response
// format instruction is not part of either template; the prompt resolver
// appends it unconditionally.
type PromptTemplates struct {
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
}

// ClassificationRecord is a persisted classification result row.
type ClassificationRecord struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	Reason        string    `json:"reason"`
	Method        Method    `json:"method"`
	Confidence    float64   `json:"confidence"`
	IsConfirmed   bool      `json:"is_confirmed"`
}
