package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sowonlabs/bunryu/internal/model"
	"github.com/sowonlabs/bunryu/internal/prompt"
)

// GetPromptTemplates returns the stored prompt template pair, falling back
// to the built-in defaults when nothing has been customized.
func (s *Store) GetPromptTemplates(ctx context.Context) (model.PromptTemplates, error) {
	row := s.db.QueryRowContext(ctx, `SELECT system_prompt, user_prompt FROM prompt_settings WHERE id = 1`)

	var t model.PromptTemplates
	if err := row.Scan(&t.SystemPrompt, &t.UserPrompt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PromptTemplates{
				SystemPrompt: prompt.DefaultSystemPrompt,
				UserPrompt:   prompt.DefaultUserPrompt,
			}, nil
		}
		return model.PromptTemplates{}, fmt.Errorf("failed to load prompt settings: %w", err)
	}
	return t, nil
}

// SetPromptTemplates stores a customized template pair.
func (s *Store) SetPromptTemplates(ctx context.Context, t model.PromptTemplates) error {
	if t.SystemPrompt == "" || t.UserPrompt == "" {
		return fmt.Errorf("system and user prompts must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO prompt_settings (id, system_prompt, user_prompt, updated_at)
VALUES (1, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
	system_prompt = excluded.system_prompt,
	user_prompt = excluded.user_prompt,
	updated_at = CURRENT_TIMESTAMP`,
		t.SystemPrompt, t.UserPrompt)
	if err != nil {
		return fmt.Errorf("failed to save prompt settings: %w", err)
	}
	return nil
}

// ResetPromptTemplates removes any customized templates, reverting to the
// built-in defaults.
func (s *Store) ResetPromptTemplates(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prompt_settings WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to reset prompt settings: %w", err)
	}
	return nil
}
