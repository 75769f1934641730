package middleware

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/carescene/carescene/internal/domain"
)

// Guard tracks chats with a request currently being processed, so a chat
// can never have two overlapping generation requests.
type Guard struct {
	mu     sync.Mutex
	active map[int64]bool
}

func NewGuard() *Guard {
	return &Guard{active: make(map[int64]bool)}
}

// Acquire marks the chat busy. Returns domain.ErrActiveRequest if it
// already is.
func (g *Guard) Acquire(chatID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[chatID] {
		return domain.ErrActiveRequest
	}
	g.active[chatID] = true
	return nil
}

// Release frees the chat's slot.
func (g *Guard) Release(chatID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, chatID)
}

// InFlight returns middleware that serializes message handling per chat.
// A message arriving while the previous one (possibly a long generation
// call) is still being processed gets a deterministic "please wait" reply
// and is otherwise ignored.
func InFlight(guard *Guard) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if err := guard.Acquire(chatID); err != nil {
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Please wait for the previous request to finish.",
				})
				return
			}
			defer guard.Release(chatID)

			next(ctx, b, update)
		}
	}
}
