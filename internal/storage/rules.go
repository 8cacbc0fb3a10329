package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/sowonlabs/bunryu/internal/model"
)

// SaveRule inserts a classification rule. The target account is referenced
// by code; it must already exist.
func (s *Store) SaveRule(ctx context.Context, r *model.ClassificationRule) error {
	if r.Name == "" {
		return fmt.Errorf("rule name is required")
	}

	account := r.Account
	if account.ID == "" {
		resolved, err := s.GetAccountByCode(ctx, account.Code)
		if err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
		account = *resolved
		r.Account = account
	}

	conditions, err := json.Marshal(r.Conditions)
	if err != nil {
		return fmt.Errorf("failed to serialize conditions: %w", err)
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO classification_rules (id, name, priority, conditions, account_id, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Priority, string(conditions), account.ID, r.IsActive)
	if err != nil {
		return fmt.Errorf("failed to save rule: %w", err)
	}
	return nil
}

// ListRules returns rules with their target accounts embedded, ordered by
// priority descending then insertion order. This is the exact order the
// rule engine expects; callers must not re-sort.
func (s *Store) ListRules(ctx context.Context, activeOnly bool) ([]model.ClassificationRule, error) {
	query := `
SELECT r.id, r.name, r.priority, r.conditions, r.is_active, r.created_at,
       a.id, a.code, a.name, a.category, a.is_active
FROM classification_rules r
JOIN accounts a ON a.id = r.account_id`
	if activeOnly {
		query += ` WHERE r.is_active = 1 AND a.is_active = 1`
	}
	query += ` ORDER BY r.priority DESC, r.created_at ASC, r.rowid ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.ClassificationRule
	for rows.Next() {
		var r model.ClassificationRule
		var conditions string
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Priority, &conditions, &r.IsActive, &r.CreatedAt,
			&r.Account.ID, &r.Account.Code, &r.Account.Name, &r.Account.Category, &r.Account.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		if err := json.Unmarshal([]byte(conditions), &r.Conditions); err != nil {
			return nil, fmt.Errorf("rule %s has malformed conditions: %w", r.ID, err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// SetRuleActive toggles a rule's active flag by rule id.
func (s *Store) SetRuleActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE classification_rules SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("rule %s not found", id)
	}
	return nil
}
