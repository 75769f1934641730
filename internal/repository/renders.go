package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carescene/carescene/internal/domain"
)

// AddRender appends one generation attempt. Renders are immutable once
// written; every attempt (success or failure) gets its own row.
func (s *Store) AddRender(ctx context.Context, r *domain.Render) (*domain.Render, error) {
	var out domain.Render
	err := s.pool.QueryRow(ctx, `
		INSERT INTO renders (session_id, prompt_used, image_url, succeeded, error_message, cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, session_id, prompt_used, image_url, succeeded, error_message, cost, created_at`,
		r.SessionID, r.PromptUsed, r.ImageURL, r.Succeeded, r.ErrorMessage, r.Cost,
	).Scan(&out.ID, &out.SessionID, &out.PromptUsed, &out.ImageURL,
		&out.Succeeded, &out.ErrorMessage, &out.Cost, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add render: %w", err)
	}
	return &out, nil
}

// GetRenders returns all generation attempts in request order.
func (s *Store) GetRenders(ctx context.Context, sessionID uuid.UUID) ([]domain.Render, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, prompt_used, image_url, succeeded, error_message, cost, created_at
		FROM renders WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get renders: %w", err)
	}
	defer rows.Close()

	var renders []domain.Render
	for rows.Next() {
		var r domain.Render
		if err := rows.Scan(&r.ID, &r.SessionID, &r.PromptUsed, &r.ImageURL,
			&r.Succeeded, &r.ErrorMessage, &r.Cost, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		renders = append(renders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate renders: %w", err)
	}
	return renders, nil
}

// CountSucceededRenders reports how many attempts for the session succeeded.
func (s *Store) CountSucceededRenders(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM renders WHERE session_id = $1 AND succeeded`,
		sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count succeeded renders: %w", err)
	}
	return count, nil
}
