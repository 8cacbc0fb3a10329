package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/sowonlabs/bunryu/internal/common"
	"github.com/sowonlabs/bunryu/internal/model"
)

// SaveAccount inserts a new account. Codes are unique; inserting a
// duplicate code returns common.ErrDuplicateEntry.
func (s *Store) SaveAccount(ctx context.Context, a *model.Account) error {
	if a.Code == "" || a.Name == "" {
		return fmt.Errorf("account code and name are required")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, code, name, category, is_active) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Code, a.Name, a.Category, a.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s", common.ErrDuplicateEntry, a.Code)
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// GetAccountByCode fetches one account by its code.
func (s *Store) GetAccountByCode(ctx context.Context, code string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, code, name, category, is_active, created_at FROM accounts WHERE code = ?`, code)

	var a model.Account
	if err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Category, &a.IsActive, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// ListAccounts returns accounts ordered by code ascending.
func (s *Store) ListAccounts(ctx context.Context, activeOnly bool) ([]model.Account, error) {
	query := `SELECT id, code, name, category, is_active, created_at FROM accounts`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY code ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Category, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SetAccountActive toggles an account's active flag.
func (s *Store) SetAccountActive(ctx context.Context, code string, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET is_active = ? WHERE code = ?`, active, code)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, code)
	}
	return nil
}

// ImportResult summarizes a bulk account import.
type ImportResult struct {
	Errors   []RowError
	Imported int
	Skipped  int
}

// RowError records a failed import row, 1-based.
type RowError struct {
	Error string
	Row   int
}

// ImportAccounts inserts accounts in bulk, skipping duplicate codes and
// invalid rows. Failures are per-row; the import continues.
func (s *Store) ImportAccounts(ctx context.Context, accounts []model.Account) (*ImportResult, error) {
	result := &ImportResult{}
	for i := range accounts {
		a := accounts[i]
		a.IsActive = true
		err := s.SaveAccount(ctx, &a)
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, common.ErrDuplicateEntry):
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: i + 1, Error: fmt.Sprintf("중복 코드: %s", a.Code)})
		default:
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: i + 1, Error: err.Error()})
		}
	}
	return result, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return errors.Is(sqliteErr.ExtendedCode, sqlite3.ErrConstraintUnique) ||
			errors.Is(sqliteErr.ExtendedCode, sqlite3.ErrConstraintPrimaryKey)
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
