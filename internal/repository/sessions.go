package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carescene/carescene/internal/domain"
)

const sessionColumns = `id, chat_id, step, gender_identity, age, ethnicity, health,
	interaction, final_prompt, revisions_used, awaiting_revision, created_at, updated_at`

func scanSession(row pgx.Row) (*domain.CoachSession, error) {
	var sess domain.CoachSession
	err := row.Scan(
		&sess.ID,
		&sess.ChatID,
		&sess.Step,
		&sess.Profile.GenderIdentity,
		&sess.Profile.Age,
		&sess.Profile.Ethnicity,
		&sess.Profile.Health,
		&sess.Profile.Interaction,
		&sess.FinalPrompt,
		&sess.RevisionsUsed,
		&sess.AwaitingRevision,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// CreateSession inserts a fresh session row for the chat.
func (s *Store) CreateSession(ctx context.Context, chatID int64) (*domain.CoachSession, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO sessions (id, chat_id) VALUES ($1, $2)
		RETURNING `+sessionColumns,
		uuid.New(), chatID,
	)
	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// GetSession loads a session by ID.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*domain.CoachSession, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id,
	)
	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// SaveSession writes back the session's mutable state.
func (s *Store) SaveSession(ctx context.Context, sess *domain.CoachSession) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE sessions SET
			step = $2,
			gender_identity = $3,
			age = $4,
			ethnicity = $5,
			health = $6,
			interaction = $7,
			final_prompt = $8,
			revisions_used = $9,
			awaiting_revision = $10,
			updated_at = now()
		WHERE id = $1`,
		sess.ID,
		sess.Step,
		sess.Profile.GenderIdentity,
		sess.Profile.Age,
		sess.Profile.Ethnicity,
		sess.Profile.Health,
		sess.Profile.Interaction,
		sess.FinalPrompt,
		sess.RevisionsUsed,
		sess.AwaitingRevision,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
