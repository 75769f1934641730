package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/domain"
	"github.com/carescene/carescene/internal/wizard"
)

// Elicitor produces the assistant question for a wizard step. The default
// implementation returns the fixed question text; the LLM variant rephrases
// it against the running transcript and signals step completion with a
// structured flag rather than a marker phrase in free text.
type Elicitor interface {
	NextQuestion(ctx context.Context, transcript []domain.Turn, step int) (string, error)
}

// StaticElicitor returns the canonical question for each step.
type StaticElicitor struct {
	wiz *wizard.Wizard
}

func NewStaticElicitor(wiz *wizard.Wizard) *StaticElicitor {
	return &StaticElicitor{wiz: wiz}
}

func (e *StaticElicitor) NextQuestion(_ context.Context, _ []domain.Turn, step int) (string, error) {
	q := e.wiz.Question(step)
	if q == "" {
		return "", fmt.Errorf("no question for step %d", step)
	}
	return q, nil
}

// ChatCompleter is the completion collaborator contract.
type ChatCompleter interface {
	Chat(ctx context.Context, model string, messages []ChatMessage) (string, error)
}

// LLMElicitor asks a completion model to phrase the next question. The
// model must answer with strict JSON {"question": "...", "done": bool};
// anything else falls back to the static question, so the conversation
// never stalls on collaborator trouble.
type LLMElicitor struct {
	completer ChatCompleter
	model     string
	fallback  *StaticElicitor
	wiz       *wizard.Wizard
}

func NewLLMElicitor(completer ChatCompleter, model string, wiz *wizard.Wizard) *LLMElicitor {
	return &LLMElicitor{
		completer: completer,
		model:     model,
		fallback:  NewStaticElicitor(wiz),
		wiz:       wiz,
	}
}

type elicitReply struct {
	Question string `json:"question"`
	Done     bool   `json:"done"`
}

func (e *LLMElicitor) NextQuestion(ctx context.Context, transcript []domain.Turn, step int) (string, error) {
	canonical := e.wiz.Question(step)
	if canonical == "" {
		return e.fallback.NextQuestion(ctx, transcript, step)
	}

	ctx, cancel := context.WithTimeout(ctx, config.CoachTimeout)
	defer cancel()

	messages := []ChatMessage{
		{Role: "system", Content: elicitInstruction(canonical)},
		{Role: "user", Content: renderTranscript(transcript)},
	}

	raw, err := e.completer.Chat(ctx, e.model, messages)
	if err != nil {
		slog.Warn("llm elicitor failed, using static question", "error", err, "step", step)
		return e.fallback.NextQuestion(ctx, transcript, step)
	}

	var reply elicitReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &reply); err != nil || reply.Question == "" {
		slog.Warn("llm elicitor returned malformed reply, using static question", "step", step)
		return e.fallback.NextQuestion(ctx, transcript, step)
	}
	return reply.Question, nil
}

func elicitInstruction(canonical string) string {
	return "You help a guided conversation collect one attribute at a time for a healthcare image prompt. " +
		"The attribute to collect next is covered by this canonical question: \"" + canonical + "\". " +
		"Rephrase it naturally given the conversation so far, asking for exactly that attribute and nothing else. " +
		`Reply with strict JSON only: {"question": "<your question>", "done": false}.`
}

func renderTranscript(transcript []domain.Turn) string {
	if len(transcript) == 0 {
		return "(conversation just started)"
	}
	var b strings.Builder
	for _, t := range transcript {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	return b.String()
}
