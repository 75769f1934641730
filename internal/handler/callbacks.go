package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/carescene/carescene/internal/domain"
	"github.com/carescene/carescene/internal/middleware"
	tg "github.com/carescene/carescene/internal/telegram"
)

// answerCallback acknowledges the callback so the button stops spinning.
func answerCallback(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})
}

func callbackChatID(update *models.Update) int64 {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return 0
	}
	return update.CallbackQuery.Message.Message.Chat.ID
}

// handleReviseCallback opens one revision cycle: the next plain text
// message becomes the revision note. Requires a prior successful render.
func (h *Handler) handleReviseCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := callbackChatID(update)
	sess := middleware.GetSession(ctx)
	if chatID == 0 || sess == nil {
		return
	}

	if !sess.Completed() {
		answerCallback(ctx, b, update, "Finish the questions first.")
		return
	}

	if err := h.sessions.RequireSuccessfulRender(ctx, sess.ID); err != nil {
		if errors.Is(err, domain.ErrNoSuccessfulRender) {
			answerCallback(ctx, b, update, "There is no successful image to revise yet.")
			return
		}
		slog.Error("check renders", "error", err, "session_id", sess.ID)
		answerCallback(ctx, b, update, "Something went wrong.")
		return
	}
	if sess.RevisionsUsed >= h.cfg.MaxRevisions {
		answerCallback(ctx, b, update, "Revision limit reached.")
		tg.SendText(ctx, b, chatID,
			"🚫 The revision limit for this image has been reached. Use /restart to begin a new one.")
		return
	}

	sess.AwaitingRevision = true
	if err := h.sessions.Save(ctx, sess); err != nil {
		slog.Error("save session", "error", err, "session_id", sess.ID)
		answerCallback(ctx, b, update, "Something went wrong.")
		return
	}

	answerCallback(ctx, b, update, "")
	prompt := "✏️ Tell me what to change (e.g., \"make the doctor older\")."
	if err := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleAssistant, prompt); err != nil {
		slog.Error("append assistant turn", "error", err, "session_id", sess.ID)
	}
	tg.SendText(ctx, b, chatID, prompt)
}

func (h *Handler) handleExportCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := callbackChatID(update)
	sess := middleware.GetSession(ctx)
	if chatID == 0 || sess == nil {
		return
	}
	answerCallback(ctx, b, update, "")
	h.sendExportLink(ctx, b, chatID, sess)
}

func (h *Handler) handleRestartCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := callbackChatID(update)
	if chatID == 0 {
		return
	}
	answerCallback(ctx, b, update, "")

	sess, err := h.sessions.Reset(ctx, chatID)
	if err != nil {
		slog.Error("reset session", "error", err, "chat_id", chatID)
		tg.SendText(ctx, b, chatID, "❌ Something went wrong starting a new conversation. Please try again.")
		return
	}
	h.askCurrentQuestion(ctx, b, chatID, sess)
}
