package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/carescene/carescene/internal/domain"
	tg "github.com/carescene/carescene/internal/telegram"
)

// handleStart serves /start and /restart: a fresh session from any state,
// then the first question.
func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess, err := h.sessions.Reset(ctx, chatID)
	if err != nil {
		slog.Error("reset session", "error", err, "chat_id", chatID)
		tg.SendText(ctx, b, chatID, "❌ Something went wrong starting a new conversation. Please try again.")
		return
	}

	tg.SendText(ctx, b, chatID,
		"🩺 I help you build an inclusive preventive-healthcare image.\n"+
			"I will ask five short questions about the patient, then generate the image.\n"+
			"Use /restart anytime to start over.")

	h.askCurrentQuestion(ctx, b, chatID, sess)
}

// askCurrentQuestion emits the question for the session's current step and
// records it as an assistant turn.
func (h *Handler) askCurrentQuestion(ctx context.Context, b *bot.Bot, chatID int64, sess *domain.CoachSession) {
	transcript, err := h.sessions.Transcript(ctx, sess.ID)
	if err != nil {
		slog.Error("load transcript", "error", err, "session_id", sess.ID)
	}

	question, err := h.elicitor.NextQuestion(ctx, transcript, sess.Step)
	if err != nil {
		slog.Error("elicit question", "error", err, "session_id", sess.ID, "step", sess.Step)
		question = h.wizard.Question(sess.Step)
	}
	if question == "" {
		return
	}

	if err := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleAssistant, question); err != nil {
		slog.Error("append assistant turn", "error", err, "session_id", sess.ID)
	}
	tg.SendText(ctx, b, chatID, question)
}
