// Package handler wires Telegram updates to the wizard: commands,
// callback buttons, and the plain-text flow that answers one step at a
// time.
package handler

import (
	"github.com/go-telegram/bot"

	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/service"
	"github.com/carescene/carescene/internal/wizard"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot       *bot.Bot
	cfg       *config.Config
	wizard    *wizard.Wizard
	sessions  *service.SessionService
	generator *service.GenerateService
	elicitor  service.Elicitor
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot       *bot.Bot
	Cfg       *config.Config
	Wizard    *wizard.Wizard
	Sessions  *service.SessionService
	Generator *service.GenerateService
	Elicitor  service.Elicitor
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		wizard:    deps.Wizard,
		sessions:  deps.Sessions,
		generator: deps.Generator,
		elicitor:  deps.Elicitor,
	}
}
