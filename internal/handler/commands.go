package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/carescene/carescene/internal/domain"
	"github.com/carescene/carescene/internal/middleware"
	tg "github.com/carescene/carescene/internal/telegram"
)

// handleStatus reports wizard progress and spend for the active session.
func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}
	chatID := update.Message.Chat.ID

	var bld strings.Builder
	if sess.Completed() {
		bld.WriteString("✅ All five attributes collected.\n\n")
	} else {
		fmt.Fprintf(&bld, "📋 Step %d of %d.\n\n", sess.Step+1, len(domain.Attributes))
	}
	for _, attr := range domain.Attributes {
		value := sess.Profile.Get(attr)
		if value == "" {
			fmt.Fprintf(&bld, "▫️ %s — pending\n", attrLabel(attr))
		} else {
			fmt.Fprintf(&bld, "▪️ %s — %s\n", attrLabel(attr), value)
		}
	}

	renders, err := h.sessions.Renders(ctx, sess.ID)
	if err != nil {
		slog.Error("load renders", "error", err, "session_id", sess.ID)
	} else if len(renders) > 0 {
		spent := decimal.Zero
		succeeded := 0
		for _, r := range renders {
			spent = spent.Add(r.Cost)
			if r.Succeeded {
				succeeded++
			}
		}
		fmt.Fprintf(&bld, "\n🖼 Images: %d generated, %d attempts, $%s spent.\n",
			succeeded, len(renders), spent.StringFixed(3))
	}
	fmt.Fprintf(&bld, "\nRevisions used: %d of %d.", sess.RevisionsUsed, h.cfg.MaxRevisions)

	tg.SendText(ctx, b, chatID, bld.String())
}

func attrLabel(attr domain.Attribute) string {
	switch attr {
	case domain.AttrGenderIdentity:
		return "Gender identity"
	case domain.AttrAge:
		return "Age group"
	case domain.AttrEthnicity:
		return "Ethnic background"
	case domain.AttrHealth:
		return "Health condition"
	case domain.AttrInteraction:
		return "Doctor interaction"
	}
	return string(attr)
}

// handleExport sends the transcript export link for the active session.
func (h *Handler) handleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}
	h.sendExportLink(ctx, b, update.Message.Chat.ID, sess)
}

func (h *Handler) sendExportLink(ctx context.Context, b *bot.Bot, chatID int64, sess *domain.CoachSession) {
	if !h.cfg.HTTPEnable {
		tg.SendText(ctx, b, chatID, "❌ Transcript export is not enabled on this bot.")
		return
	}
	url := fmt.Sprintf("%s/sessions/%s/transcript.html",
		strings.TrimSuffix(h.cfg.PublicURL, "/"), sess.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "📤 Your conversation transcript:",
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(tg.URLButton("Open transcript", url)),
		),
	})
}

// handleRetry re-issues the most recent generation request. Allowed only
// after the questions are complete and only when the last attempt failed;
// it consumes no revision budget.
func (h *Handler) handleRetry(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if !sess.Completed() {
		tg.SendText(ctx, b, chatID, "📋 Nothing to retry yet — let's finish the questions first.")
		return
	}

	renders, err := h.sessions.Renders(ctx, sess.ID)
	if err != nil {
		slog.Error("load renders", "error", err, "session_id", sess.ID)
		return
	}

	prompt, ok := retryablePrompt(renders)
	if !ok {
		tg.SendText(ctx, b, chatID, "✅ The last image was generated successfully. Use 🔁 Revise to change it.")
		return
	}
	if prompt == "" {
		prompt, err = h.wizard.FinalPrompt(sess)
		if err != nil {
			slog.Error("compose final prompt", "error", err, "session_id", sess.ID)
			return
		}
	}

	status := "Retrying the image generation..."
	if err := h.sessions.AppendTurn(ctx, sess.ID, domain.RoleAssistant, status); err != nil {
		slog.Error("append assistant turn", "error", err, "session_id", sess.ID)
	}
	tg.SendText(ctx, b, chatID, status)

	h.generateAndReply(ctx, b, chatID, sess, prompt)
}

// retryablePrompt decides what /retry should re-issue. A retry is refused
// only when the last attempt produced a displayable image; a failed
// attempt, or a succeeded one with an unusable link, may be re-issued
// with its own prompt. An empty prompt with ok=true means no attempt
// exists yet and the session's final prompt should be used.
func retryablePrompt(renders []domain.Render) (prompt string, ok bool) {
	if len(renders) == 0 {
		return "", true
	}
	last := renders[len(renders)-1]
	if last.Displayable() {
		return "", false
	}
	return last.PromptUsed, true
}
