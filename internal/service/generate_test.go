package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/domain"
)

type fakeRenderStore struct {
	renders []domain.Render
}

func (f *fakeRenderStore) AddRender(_ context.Context, r *domain.Render) (*domain.Render, error) {
	stored := *r
	stored.ID = int64(len(f.renders) + 1)
	f.renders = append(f.renders, stored)
	return &stored, nil
}

type fakeGenerator struct {
	url string
	err error
}

func (f *fakeGenerator) GenerateImage(context.Context, string) (string, error) {
	return f.url, f.err
}

func testGenerateService(store RenderStore, gen ImageGenerator) *GenerateService {
	return NewGenerateService(store, gen, &config.Config{
		ImageSize:    "1024x1024",
		ImageQuality: "standard",
	})
}

func TestGenerateRecordsSuccess(t *testing.T) {
	t.Parallel()

	store := &fakeRenderStore{}
	svc := testGenerateService(store, &fakeGenerator{url: "https://img.example.com/1.png"})
	sess := &domain.CoachSession{ID: uuid.New()}

	render, err := svc.Generate(context.Background(), sess, "a prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !render.Succeeded {
		t.Fatal("render not marked succeeded")
	}
	if render.ImageURL != "https://img.example.com/1.png" {
		t.Fatalf("image url = %q", render.ImageURL)
	}
	if render.PromptUsed != "a prompt" {
		t.Fatalf("prompt used = %q", render.PromptUsed)
	}
	if !render.Cost.Equal(decimal.NewFromFloat(0.040)) {
		t.Fatalf("cost = %s, want 0.040", render.Cost)
	}
	if len(store.renders) != 1 {
		t.Fatalf("stored %d renders, want 1", len(store.renders))
	}
}

func TestGenerateRecordsFailureWithoutCost(t *testing.T) {
	t.Parallel()

	genErr := fmt.Errorf("%w: rejected by safety system", domain.ErrContentPolicy)
	store := &fakeRenderStore{}
	svc := testGenerateService(store, &fakeGenerator{err: genErr})
	sess := &domain.CoachSession{ID: uuid.New()}

	render, err := svc.Generate(context.Background(), sess, "a prompt")
	if !errors.Is(err, domain.ErrContentPolicy) {
		t.Fatalf("error = %v, want ErrContentPolicy", err)
	}
	if render == nil {
		t.Fatal("failed attempt not recorded")
	}
	if render.Succeeded {
		t.Fatal("failed render marked succeeded")
	}
	if !strings.Contains(render.ErrorMessage, "content policy") {
		t.Fatalf("error message %q missing policy indicator", render.ErrorMessage)
	}
	if !render.Cost.IsZero() {
		t.Fatalf("failed render has cost %s", render.Cost)
	}
	if len(store.renders) != 1 {
		t.Fatalf("stored %d renders, want 1", len(store.renders))
	}
}

func TestGenerateAppendsWithoutReplacing(t *testing.T) {
	t.Parallel()

	store := &fakeRenderStore{}
	gen := &fakeGenerator{url: "https://img.example.com/first.png"}
	svc := testGenerateService(store, gen)
	sess := &domain.CoachSession{ID: uuid.New()}

	if _, err := svc.Generate(context.Background(), sess, "original prompt"); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	gen.url = "https://img.example.com/second.png"
	if _, err := svc.Generate(context.Background(), sess, "original prompt Revision request: make the doctor older"); err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if len(store.renders) != 2 {
		t.Fatalf("stored %d renders, want 2", len(store.renders))
	}
	first := store.renders[0]
	if first.PromptUsed != "original prompt" || first.ImageURL != "https://img.example.com/first.png" {
		t.Fatalf("first render mutated: %+v", first)
	}
	second := store.renders[1]
	if !strings.Contains(second.PromptUsed, "make the doctor older") {
		t.Fatalf("second render prompt %q missing revision note", second.PromptUsed)
	}
}

func TestImagePriceFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := imagePrice("999x999", "ultra"); !got.Equal(decimal.NewFromFloat(config.PriceDefault)) {
		t.Fatalf("price = %s, want default", got)
	}
	if got := imagePrice("1024x1792", "hd"); !got.Equal(decimal.NewFromFloat(0.120)) {
		t.Fatalf("price = %s, want 0.120", got)
	}
}
