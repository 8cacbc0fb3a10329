package model

import "time"

// Account represents a ledger account ("계정과목") that a transaction can be
// classified into, e.g. 51100 복리후생비. The active account list is the fixed
// universe of valid classification targets.
type Account struct {
	CreatedAt time.Time `json:"created_at,omitempty"`
	ID        string    `json:"id,omitempty"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	IsActive  bool      `json:"is_active"`
}
