package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carescene/carescene/internal/domain"
)

func renderDoc(t *testing.T, data Data) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteHTML(&buf, data); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse exported html: %v", err)
	}
	return doc
}

func TestWriteHTMLPreservesTurnOrder(t *testing.T) {
	t.Parallel()

	sessID := uuid.New()
	doc := renderDoc(t, Data{
		SessionID: sessID,
		Turns: []domain.Turn{
			{Role: domain.RoleAssistant, Content: "first question"},
			{Role: domain.RoleUser, Content: "first answer"},
			{Role: domain.RoleAssistant, Content: "second question"},
		},
		GeneratedAt: time.Now(),
	})

	turns := doc.Find(".transcript .turn")
	if turns.Length() != 3 {
		t.Fatalf("rendered %d turns, want 3", turns.Length())
	}

	want := []string{"first question", "first answer", "second question"}
	turns.Each(func(i int, s *goquery.Selection) {
		if got := strings.TrimSpace(s.Find("p").Text()); got != want[i] {
			t.Errorf("turn %d text = %q, want %q", i, got, want[i])
		}
	})

	if got := turns.Eq(1).AttrOr("class", ""); !strings.Contains(got, "user") {
		t.Fatalf("second turn class = %q, want user", got)
	}
}

func TestWriteHTMLEscapesUserContent(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, Data{
		SessionID: uuid.New(),
		Turns: []domain.Turn{
			{Role: domain.RoleUser, Content: `<script>alert("x")</script>`},
		},
		GeneratedAt: time.Now(),
	})

	if doc.Find(".transcript script").Length() != 0 {
		t.Fatal("user content injected a script element")
	}
	if got := doc.Find(".transcript .turn p").Text(); !strings.Contains(got, `<script>alert("x")</script>`) {
		t.Fatalf("escaped content not rendered as text: %q", got)
	}
}

func TestWriteHTMLEmbedsOnlyDisplayableRenders(t *testing.T) {
	t.Parallel()

	sessID := uuid.New()
	doc := renderDoc(t, Data{
		SessionID: sessID,
		Renders: []domain.Render{
			{
				SessionID:  sessID,
				PromptUsed: "prompt one",
				ImageURL:   "https://img.example.com/ok.png",
				Succeeded:  true,
				Cost:       decimal.NewFromFloat(0.04),
			},
			{
				SessionID:    sessID,
				PromptUsed:   "prompt two",
				Succeeded:    false,
				ErrorMessage: "content policy violation: rejected",
			},
			{
				SessionID:  sessID,
				PromptUsed: "prompt three",
				ImageURL:   "not-a-url",
				Succeeded:  true,
			},
		},
		GeneratedAt: time.Now(),
	})

	imgs := doc.Find(".renders img")
	if imgs.Length() != 1 {
		t.Fatalf("embedded %d images, want 1", imgs.Length())
	}
	if src := imgs.AttrOr("src", ""); src != "https://img.example.com/ok.png" {
		t.Fatalf("img src = %q", src)
	}

	failed := doc.Find(".renders .render.failed")
	if failed.Length() != 1 {
		t.Fatalf("rendered %d failed blocks, want 1", failed.Length())
	}
	if text := failed.Text(); !strings.Contains(text, "content policy violation") {
		t.Fatalf("failed block missing error message: %q", text)
	}

	// A succeeded attempt with a non-fetchable link is neither embedded
	// nor mislabeled as failed.
	unavailable := doc.Find(".renders .render.unavailable")
	if unavailable.Length() != 1 {
		t.Fatalf("rendered %d unavailable blocks, want 1", unavailable.Length())
	}
	if text := unavailable.Text(); !strings.Contains(text, "Image link unavailable") {
		t.Fatalf("unavailable block missing label: %q", text)
	}
	if text := unavailable.Text(); strings.Contains(text, "Generation failed") {
		t.Fatalf("succeeded render labeled as failed: %q", text)
	}
}
