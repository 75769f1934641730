// Package wizard drives the guided conversation: a fixed sequence of
// questions, one profile attribute per step, ending with a composed
// generation prompt. It mutates in-memory sessions only; persistence is
// the caller's concern.
package wizard

import (
	"strings"

	"github.com/carescene/carescene/internal/domain"
)

type Wizard struct {
	steps        []Step
	composer     *Composer
	maxRevisions int
}

func New(styleSuffix string, maxRevisions int) *Wizard {
	return &Wizard{
		steps:        DefaultSteps,
		composer:     NewComposer(styleSuffix),
		maxRevisions: maxRevisions,
	}
}

// Steps returns the configured step sequence.
func (w *Wizard) Steps() []Step { return w.steps }

// Question returns the question for the given step, or "" past the end.
func (w *Wizard) Question(step int) string {
	if step < 0 || step >= len(w.steps) {
		return ""
	}
	return w.steps[step].Question
}

// StepResult describes what one accepted answer did to the session.
type StepResult struct {
	Attr         domain.Attribute
	Answer       string
	NextQuestion string // empty once the flow is complete
	Completed    bool
	FinalPrompt  string // set only when Completed
}

// Submit applies one user answer to the session. Blank or whitespace-only
// input returns domain.ErrEmptyInput and changes nothing; input past the
// last step returns domain.ErrSessionComplete. Accepted answers are stored
// verbatim and the step advances. The answer that fills the last attribute
// also composes the final prompt, exactly once.
func (w *Wizard) Submit(s *domain.CoachSession, input string) (*StepResult, error) {
	if s.Completed() {
		return nil, domain.ErrSessionComplete
	}
	if strings.TrimSpace(input) == "" {
		return nil, domain.ErrEmptyInput
	}

	step := w.steps[s.Step]
	s.Profile.Set(step.Attr, input)
	s.Step++

	res := &StepResult{
		Attr:   step.Attr,
		Answer: input,
	}

	if s.Step < len(w.steps) {
		res.NextQuestion = w.steps[s.Step].Question
		return res, nil
	}

	prompt, err := w.composer.Compose(&s.Profile, "")
	if err != nil {
		return nil, err
	}
	s.FinalPrompt = &prompt
	res.Completed = true
	res.FinalPrompt = prompt
	return res, nil
}

// FinalPrompt returns the session's composed prompt, recomposing from the
// profile when the stored pointer is absent (e.g. a session loaded from
// storage written by an older version).
func (w *Wizard) FinalPrompt(s *domain.CoachSession) (string, error) {
	if s.FinalPrompt != nil {
		return *s.FinalPrompt, nil
	}
	return w.composer.Compose(&s.Profile, "")
}

// ComposeRevision builds the prompt for one revision cycle. The session
// must be complete and must have revision budget left; the caller is
// responsible for incrementing RevisionsUsed once the generation request
// has actually been issued.
func (w *Wizard) ComposeRevision(s *domain.CoachSession, note string) (string, error) {
	if !s.Completed() {
		return "", domain.ErrSessionNotComplete
	}
	if s.RevisionsUsed >= w.maxRevisions {
		return "", domain.ErrRevisionsExhausted
	}
	return w.composer.Compose(&s.Profile, note)
}
