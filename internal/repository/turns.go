package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carescene/carescene/internal/domain"
)

// AddTurn appends one transcript entry. Insertion order is the transcript
// order; turns are never updated or individually deleted.
func (s *Store) AddTurn(ctx context.Context, sessionID uuid.UUID, role, content string) (*domain.Turn, error) {
	var turn domain.Turn
	err := s.pool.QueryRow(ctx, `
		INSERT INTO turns (session_id, role, content) VALUES ($1, $2, $3)
		RETURNING id, session_id, role, content, created_at`,
		sessionID, role, content,
	).Scan(&turn.ID, &turn.SessionID, &turn.Role, &turn.Content, &turn.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add turn: %w", err)
	}
	return &turn, nil
}

// GetTurns returns the session transcript in insertion order.
func (s *Store) GetTurns(ctx context.Context, sessionID uuid.UUID) ([]domain.Turn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM turns WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}
	return turns, nil
}
