package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carescene/carescene/internal/domain"
)

// SessionStore is the storage contract the session service depends on.
// *repository.Store satisfies it.
type SessionStore interface {
	UpsertChat(ctx context.Context, chatID int64) (*domain.Chat, error)
	SetActiveSession(ctx context.Context, chatID int64, sessionID *uuid.UUID) error
	CreateSession(ctx context.Context, chatID int64) (*domain.CoachSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.CoachSession, error)
	SaveSession(ctx context.Context, sess *domain.CoachSession) error
	AddTurn(ctx context.Context, sessionID uuid.UUID, role, content string) (*domain.Turn, error)
	GetTurns(ctx context.Context, sessionID uuid.UUID) ([]domain.Turn, error)
	GetRenders(ctx context.Context, sessionID uuid.UUID) ([]domain.Render, error)
	CountSucceededRenders(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

// SessionService owns the lifecycle of coaching sessions: one active
// session per chat, append-only transcript, append-only render history.
type SessionService struct {
	store SessionStore
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

// FindOrCreate returns the chat's active session, creating the chat row
// and a fresh session when none exists.
func (s *SessionService) FindOrCreate(ctx context.Context, chatID int64) (*domain.CoachSession, error) {
	chat, err := s.store.UpsertChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.ActiveSessionID != nil {
		sess, err := s.store.GetSession(ctx, *chat.ActiveSessionID)
		if err == nil {
			return sess, nil
		}
		if err != domain.ErrSessionNotFound {
			return nil, fmt.Errorf("load active session: %w", err)
		}
	}
	return s.createNew(ctx, chatID)
}

// Reset detaches the chat from its current session and starts a fresh
// one. Old sessions keep their rows but are no longer reachable from the
// chat, which empties the visible transcript, profile, and renders.
func (s *SessionService) Reset(ctx context.Context, chatID int64) (*domain.CoachSession, error) {
	if err := s.store.SetActiveSession(ctx, chatID, nil); err != nil {
		return nil, err
	}
	return s.createNew(ctx, chatID)
}

func (s *SessionService) createNew(ctx context.Context, chatID int64) (*domain.CoachSession, error) {
	sess, err := s.store.CreateSession(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetActiveSession(ctx, chatID, &sess.ID); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by ID.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*domain.CoachSession, error) {
	return s.store.GetSession(ctx, id)
}

// Save writes back the session's mutable state.
func (s *SessionService) Save(ctx context.Context, sess *domain.CoachSession) error {
	return s.store.SaveSession(ctx, sess)
}

// AppendTurn adds one transcript entry for the session.
func (s *SessionService) AppendTurn(ctx context.Context, sessionID uuid.UUID, role, content string) error {
	_, err := s.store.AddTurn(ctx, sessionID, role, content)
	return err
}

// Transcript returns the transcript in insertion order.
func (s *SessionService) Transcript(ctx context.Context, sessionID uuid.UUID) ([]domain.Turn, error) {
	return s.store.GetTurns(ctx, sessionID)
}

// Renders returns all generation attempts for the session in request order.
func (s *SessionService) Renders(ctx context.Context, sessionID uuid.UUID) ([]domain.Render, error) {
	return s.store.GetRenders(ctx, sessionID)
}

// RequireSuccessfulRender returns domain.ErrNoSuccessfulRender unless at
// least one generation attempt for the session succeeded. Revision cycles
// are gated on it.
func (s *SessionService) RequireSuccessfulRender(ctx context.Context, sessionID uuid.UUID) error {
	count, err := s.store.CountSucceededRenders(ctx, sessionID)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNoSuccessfulRender
	}
	return nil
}
