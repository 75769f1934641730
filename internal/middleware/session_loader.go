package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/carescene/carescene/internal/domain"
	"github.com/carescene/carescene/internal/service"
)

type ctxKey string

const SessionKey ctxKey = "session"

// GetSession extracts the chat's active session from context.
func GetSession(ctx context.Context) *domain.CoachSession {
	s, ok := ctx.Value(SessionKey).(*domain.CoachSession)
	if !ok {
		return nil
	}
	return s
}

// SessionLoader returns middleware that resolves the chat's active
// session (creating one if needed) and stores it in the context.
func SessionLoader(sessions *service.SessionService) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var chatID int64
			if update.Message != nil {
				chatID = update.Message.Chat.ID
			} else if update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil {
				chatID = update.CallbackQuery.Message.Message.Chat.ID
			}

			if chatID != 0 {
				sess, err := sessions.FindOrCreate(ctx, chatID)
				if err != nil {
					slog.Error("load session", "error", err, "chat_id", chatID)
				} else {
					ctx = context.WithValue(ctx, SessionKey, sess)
				}
			}

			next(ctx, b, update)
		}
	}
}
