// Package model defines the core data structures for the bunryu application.
package model

import "time"

// CardType distinguishes corporate cards from personal cards used for
// company expenses.
type CardType string

// Card type constants.
const (
	CardTypeCorporate CardType = "corporate"
	CardTypePersonal  CardType = "personal"
)

// Transaction represents a single card transaction to classify.
// Amount is the only required field; everything else degrades to a
// fallback literal when it reaches the prompt builder.
type Transaction struct {
	CreatedAt       time.Time `json:"created_at,omitempty"`
	ID              string    `json:"id,omitempty"`
	MerchantName    string    `json:"merchant_name,omitempty"`
	MCCCode         string    `json:"mcc_code,omitempty"`
	TransactionDate string    `json:"transaction_date,omitempty"`
	Description     string    `json:"description,omitempty"`
	CardType        CardType  `json:"card_type,omitempty"`
	Amount          float64   `json:"amount"`
}
