package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carescene/carescene/internal/domain"
)

// UpsertChat ensures a chat row exists and returns it.
func (s *Store) UpsertChat(ctx context.Context, chatID int64) (*domain.Chat, error) {
	var (
		chat   domain.Chat
		active uuid.NullUUID
	)
	err := s.pool.QueryRow(ctx, `
		INSERT INTO chats (id) VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING id, active_session_id, created_at`,
		chatID,
	).Scan(&chat.ID, &active, &chat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert chat: %w", err)
	}
	if active.Valid {
		chat.ActiveSessionID = &active.UUID
	}
	return &chat, nil
}

// SetActiveSession points the chat at a session, or clears the pointer
// when sessionID is nil.
func (s *Store) SetActiveSession(ctx context.Context, chatID int64, sessionID *uuid.UUID) error {
	var active uuid.NullUUID
	if sessionID != nil {
		active = uuid.NullUUID{UUID: *sessionID, Valid: true}
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE chats SET active_session_id = $2 WHERE id = $1`,
		chatID, active,
	)
	if err != nil {
		return fmt.Errorf("set active session: %w", err)
	}
	return nil
}
