package handler

import (
	"github.com/go-telegram/bot"
)

// Callback data values for inline keyboard actions.
const (
	cbRevise  = "coach_revise"
	cbExport  = "coach_export"
	cbRestart = "coach_restart"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/restart", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypePrefix, h.handleStatus)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypePrefix, h.handleExport)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/retry", bot.MatchTypePrefix, h.handleRetry)

	// Inline keyboard callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbRevise, bot.MatchTypeExact, h.handleReviseCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbExport, bot.MatchTypeExact, h.handleExportCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbRestart, bot.MatchTypeExact, h.handleRestartCallback)
}
