package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/domain"
)

// ImageGenerator is the generation collaborator contract.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// RenderStore persists generation attempts.
type RenderStore interface {
	AddRender(ctx context.Context, r *domain.Render) (*domain.Render, error)
}

// GenerateService issues generation requests and records every attempt as
// an immutable render, with a per-image cost on success.
type GenerateService struct {
	store  RenderStore
	images ImageGenerator
	price  decimal.Decimal
}

func NewGenerateService(store RenderStore, images ImageGenerator, cfg *config.Config) *GenerateService {
	return &GenerateService{
		store:  store,
		images: images,
		price:  imagePrice(cfg.ImageSize, cfg.ImageQuality),
	}
}

func imagePrice(size, quality string) decimal.Decimal {
	if p, ok := config.ImagePrices[size+"/"+quality]; ok {
		return decimal.NewFromFloat(p)
	}
	return decimal.NewFromFloat(config.PriceDefault)
}

// Generate calls the collaborator with the prompt and appends a render for
// the attempt. On failure the render carries the error message, the session
// state is untouched, and the classified error is returned alongside the
// recorded render.
func (g *GenerateService) Generate(ctx context.Context, sess *domain.CoachSession, prompt string) (*domain.Render, error) {
	render := &domain.Render{
		SessionID:  sess.ID,
		PromptUsed: prompt,
		Cost:       decimal.Zero,
	}

	url, genErr := g.images.GenerateImage(ctx, prompt)
	if genErr != nil {
		render.Succeeded = false
		render.ErrorMessage = genErr.Error()
	} else {
		render.Succeeded = true
		render.ImageURL = url
		render.Cost = g.price
	}

	stored, err := g.store.AddRender(ctx, render)
	if err != nil {
		// The attempt still happened; report the storage failure but keep
		// the in-memory render so the caller can show the outcome.
		slog.Error("persist render", "error", err, "session_id", sess.ID)
		stored = render
	}

	if genErr != nil {
		return stored, genErr
	}
	return stored, nil
}
