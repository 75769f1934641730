package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/domain"
	"github.com/carescene/carescene/internal/middleware"
	tg "github.com/carescene/carescene/internal/telegram"
)

// HandleText drives the wizard: each plain text message answers the
// current step, or supplies a revision note once the flow is complete.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}
	chatID := msg.Chat.ID

	if sess.Completed() {
		if sess.AwaitingRevision {
			h.handleRevisionNote(ctx, b, chatID, sess, msg.Text)
			return
		}
		tg.SendText(ctx, b, chatID,
			"✅ The image description is already complete. Use the buttons below or /restart to begin a new one.")
		h.sendActions(ctx, b, chatID)
		return
	}

	res, err := h.wizard.Submit(sess, msg.Text)
	if err != nil {
		// Blank input: no transition, no transcript entry, no user-facing
		// failure.
		if errors.Is(err, domain.ErrEmptyInput) {
			return
		}
		slog.Error("submit answer", "error", err, "session_id", sess.ID)
		return
	}

	if err := h.sessions.Save(ctx, sess); err != nil {
		slog.Error("save session", "error", err, "session_id", sess.ID)
		tg.SendText(ctx, b, chatID, "❌ Failed to record your answer. Please try again.")
		return
	}
	if err := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleUser, res.Answer); err != nil {
		slog.Error("append user turn", "error", err, "session_id", sess.ID)
	}

	if !res.Completed {
		h.askCurrentQuestion(ctx, b, chatID, sess)
		return
	}

	status := "Generating the image based on your input..."
	if err := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleAssistant, status); err != nil {
		slog.Error("append assistant turn", "error", err, "session_id", sess.ID)
	}
	tg.SendText(ctx, b, chatID, status)

	h.generateAndReply(ctx, b, chatID, sess, res.FinalPrompt)
}

// handleRevisionNote consumes one revision cycle: compose the prompt with
// the note, re-invoke the generation collaborator, append a new render.
func (h *Handler) handleRevisionNote(ctx context.Context, b *bot.Bot, chatID int64, sess *domain.CoachSession, note string) {
	if strings.TrimSpace(note) == "" {
		return
	}

	prompt, err := h.wizard.ComposeRevision(sess, note)
	if err != nil {
		if errors.Is(err, domain.ErrRevisionsExhausted) {
			sess.AwaitingRevision = false
			if saveErr := h.sessions.Save(ctx, sess); saveErr != nil {
				slog.Error("save session", "error", saveErr, "session_id", sess.ID)
			}
			tg.SendText(ctx, b, chatID,
				"🚫 The revision limit for this image has been reached. Use /restart to begin a new one.")
			return
		}
		slog.Error("compose revision", "error", err, "session_id", sess.ID)
		return
	}

	sess.AwaitingRevision = false
	sess.RevisionsUsed++
	if err := h.sessions.Save(ctx, sess); err != nil {
		slog.Error("save session", "error", err, "session_id", sess.ID)
	}
	if err := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleUser, note); err != nil {
		slog.Error("append user turn", "error", err, "session_id", sess.ID)
	}

	status := "Generating a revised image..."
	if err := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleAssistant, status); err != nil {
		slog.Error("append assistant turn", "error", err, "session_id", sess.ID)
	}
	tg.SendText(ctx, b, chatID, status)

	h.generateAndReply(ctx, b, chatID, sess, prompt)
}

// generateAndReply issues one generation request and reports the outcome.
// Failures leave the session completed so the user can /retry or revise
// without re-answering the questions.
func (h *Handler) generateAndReply(ctx context.Context, b *bot.Bot, chatID int64, sess *domain.CoachSession, prompt string) {
	stopUploading := tg.StartUploading(ctx, b, chatID)
	defer stopUploading()

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	render, err := h.generator.Generate(reqCtx, sess, prompt)
	if err != nil {
		text := generationErrorText(err)
		if appendErr := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleAssistant, text); appendErr != nil {
			slog.Error("append assistant turn", "error", appendErr, "session_id", sess.ID)
		}
		tg.SendText(ctx, b, chatID, text)
		return
	}

	reply := "Here is the image based on your input."
	if err := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleAssistant, reply); err != nil {
		slog.Error("append assistant turn", "error", err, "session_id", sess.ID)
	}

	if render.Displayable() {
		if err := tg.SendPhotoURL(ctx, b, chatID, render.ImageURL, reply); err != nil {
			slog.Error("send photo", "error", err, "session_id", sess.ID)
			tg.SendText(ctx, b, chatID, reply+"\n"+render.ImageURL)
		}
	} else {
		// Succeeded but the handle is not a fetchable link; never embed it.
		slog.Warn("render not displayable", "session_id", sess.ID, "url", render.ImageURL)
		tg.SendText(ctx, b, chatID, "⚠️ The image was generated but its link looks invalid. Use /retry to request it again.")
		return
	}

	h.sendActions(ctx, b, chatID)
}

// sendActions shows the post-generation inline keyboard.
func (h *Handler) sendActions(ctx context.Context, b *bot.Bot, chatID int64) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "What would you like to do next?",
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("🔁 Revise", cbRevise),
				tg.InlineButton("📤 Export", cbExport),
			),
			tg.ButtonRow(
				tg.InlineButton("🆕 Start over", cbRestart),
			),
		),
	})
}

// generationErrorText maps a generation failure kind onto the user-facing
// message. Content-policy rejections are terminal for the attempt; only
// transient service errors invite /retry.
func generationErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrContentPolicy):
		return "🚫 The image service declined this description for content policy reasons. Please revise the wording (🔁 Revise) and try again."
	case errors.Is(err, domain.ErrBadRequest):
		return "❌ The image request was rejected as invalid. Please revise the description or /restart."
	default:
		return "⚠️ The image service is temporarily unavailable. Your answers are saved — use /retry in a moment."
	}
}
