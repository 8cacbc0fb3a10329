package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sowonlabs/bunryu/internal/common"
	"github.com/sowonlabs/bunryu/internal/model"
)

// SaveTransaction persists a transaction, assigning an id if absent.
func (s *Store) SaveTransaction(ctx context.Context, tx *model.Transaction) error {
	if tx.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive")
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, merchant_name, mcc_code, amount, transaction_date, description, card_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.MerchantName, tx.MCCCode, tx.Amount, tx.TransactionDate, tx.Description, string(tx.CardType))
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// SaveResult persists a classification result for a stored transaction.
func (s *Store) SaveResult(ctx context.Context, rec *model.ClassificationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO classification_results (id, transaction_id, account_id, confidence, reason, method, is_confirmed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.TransactionID, rec.AccountID, rec.Confidence, rec.Reason, string(rec.Method), rec.IsConfirmed)
	if err != nil {
		return fmt.Errorf("failed to save classification result: %w", err)
	}
	return nil
}

// ConfirmResult marks a classification result as confirmed by an operator.
// Confirmed results feed the few-shot example pool.
func (s *Store) ConfirmResult(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE classification_results SET is_confirmed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to confirm result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: result %s", common.ErrNotFound, id)
	}
	return nil
}

// RecentConfirmedExamples returns the most recently confirmed
// classifications as denormalized few-shot snapshots, newest first.
func (s *Store) RecentConfirmedExamples(ctx context.Context, limit int) ([]model.ConfirmedExample, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT t.merchant_name, t.mcc_code, t.amount, a.code, a.name
FROM classification_results cr
JOIN transactions t ON t.id = cr.transaction_id
JOIN accounts a ON a.id = cr.account_id
WHERE cr.is_confirmed = 1
ORDER BY cr.created_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmed examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var examples []model.ConfirmedExample
	for rows.Next() {
		var ex model.ConfirmedExample
		if err := rows.Scan(&ex.MerchantName, &ex.MCCCode, &ex.Amount, &ex.AccountCode, &ex.AccountName); err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

// AccountUsage is one entry of the top-accounts breakdown.
type AccountUsage struct {
	Code        string
	Name        string
	Count       int
	TotalAmount float64
}

// Stats aggregates classification activity for the stats command.
type Stats struct {
	TopAccounts       []AccountUsage
	TotalTransactions int
	ConfirmedCount    int
	RuleCount         int
	AICount           int
	ConfirmationRate  float64
	AvgConfidence     float64
}

// GetStats computes dashboard statistics over stored results.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&stats.TotalTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
SELECT
	COUNT(*) FILTER (WHERE is_confirmed = 1),
	COUNT(*) FILTER (WHERE method = 'rule'),
	COUNT(*) FILTER (WHERE method = 'ai'),
	COALESCE(AVG(confidence), 0)
FROM classification_results`).Scan(&stats.ConfirmedCount, &stats.RuleCount, &stats.AICount, &stats.AvgConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate results: %w", err)
	}

	if total := stats.RuleCount + stats.AICount; total > 0 {
		stats.ConfirmationRate = float64(stats.ConfirmedCount) / float64(total)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT a.code, a.name, COUNT(*), COALESCE(SUM(t.amount), 0)
FROM classification_results cr
JOIN accounts a ON a.id = cr.account_id
JOIN transactions t ON t.id = cr.transaction_id
GROUP BY a.id
ORDER BY COUNT(*) DESC
LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("failed to query top accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var u AccountUsage
		if err := rows.Scan(&u.Code, &u.Name, &u.Count, &u.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan account usage: %w", err)
		}
		stats.TopAccounts = append(stats.TopAccounts, u)
	}
	return stats, rows.Err()
}
