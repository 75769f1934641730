package wizard

import (
	"errors"
	"testing"

	"github.com/carescene/carescene/internal/domain"
)

const testSuffix = "Test style suffix."

func newTestWizard() *Wizard {
	return New(testSuffix, 1)
}

func TestSubmitCollectsAllAttributesInOrder(t *testing.T) {
	t.Parallel()

	w := newTestWizard()
	sess := &domain.CoachSession{}

	inputs := []string{
		"non-binary, bisexual",
		"adult",
		"Black",
		"managing a chronic illness",
		"warm and attentive",
	}

	for i, input := range inputs {
		res, err := w.Submit(sess, input)
		if err != nil {
			t.Fatalf("Submit(%d) failed: %v", i, err)
		}
		if res.Answer != input {
			t.Fatalf("answer %d stored as %q, want %q", i, res.Answer, input)
		}
		wantCompleted := i == len(inputs)-1
		if res.Completed != wantCompleted {
			t.Fatalf("Submit(%d) Completed = %v, want %v", i, res.Completed, wantCompleted)
		}
		if !wantCompleted && res.NextQuestion == "" {
			t.Fatalf("Submit(%d) returned no next question", i)
		}
	}

	if !sess.Completed() {
		t.Fatalf("session not completed after all answers, step = %d", sess.Step)
	}

	want := domain.PatientProfile{
		GenderIdentity: inputs[0],
		Age:            inputs[1],
		Ethnicity:      inputs[2],
		Health:         inputs[3],
		Interaction:    inputs[4],
	}
	if sess.Profile != want {
		t.Fatalf("profile = %+v, want %+v", sess.Profile, want)
	}
	if sess.FinalPrompt == nil {
		t.Fatal("final prompt not composed on completion")
	}
}

func TestSubmitBlankInputDoesNotAdvance(t *testing.T) {
	t.Parallel()

	w := newTestWizard()
	sess := &domain.CoachSession{}

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := w.Submit(sess, input)
		if !errors.Is(err, domain.ErrEmptyInput) {
			t.Fatalf("Submit(%q) error = %v, want ErrEmptyInput", input, err)
		}
		if sess.Step != 0 {
			t.Fatalf("Submit(%q) advanced step to %d", input, sess.Step)
		}
	}
	if sess.Profile != (domain.PatientProfile{}) {
		t.Fatalf("blank input mutated profile: %+v", sess.Profile)
	}
}

func TestSubmitAfterCompletionFails(t *testing.T) {
	t.Parallel()

	w := newTestWizard()
	sess := completedSession(t, w)

	if _, err := w.Submit(sess, "one more"); !errors.Is(err, domain.ErrSessionComplete) {
		t.Fatalf("Submit after completion error = %v, want ErrSessionComplete", err)
	}
}

func TestFinalPromptRecomposesWhenMissing(t *testing.T) {
	t.Parallel()

	w := newTestWizard()
	sess := completedSession(t, w)
	stored := *sess.FinalPrompt

	sess.FinalPrompt = nil
	got, err := w.FinalPrompt(sess)
	if err != nil {
		t.Fatalf("FinalPrompt failed: %v", err)
	}
	if got != stored {
		t.Fatalf("recomposed prompt %q differs from stored %q", got, stored)
	}
}

func TestComposeRevisionRequiresCompletion(t *testing.T) {
	t.Parallel()

	w := newTestWizard()
	sess := &domain.CoachSession{}

	if _, err := w.ComposeRevision(sess, "make the doctor older"); !errors.Is(err, domain.ErrSessionNotComplete) {
		t.Fatalf("ComposeRevision error = %v, want ErrSessionNotComplete", err)
	}
}

func TestComposeRevisionEnforcesBudget(t *testing.T) {
	t.Parallel()

	w := newTestWizard() // budget of 1
	sess := completedSession(t, w)

	prompt, err := w.ComposeRevision(sess, "make the doctor older")
	if err != nil {
		t.Fatalf("first revision failed: %v", err)
	}
	if prompt == "" {
		t.Fatal("first revision produced empty prompt")
	}
	sess.RevisionsUsed++

	if _, err := w.ComposeRevision(sess, "add a window"); !errors.Is(err, domain.ErrRevisionsExhausted) {
		t.Fatalf("second revision error = %v, want ErrRevisionsExhausted", err)
	}
}

func completedSession(t *testing.T, w *Wizard) *domain.CoachSession {
	t.Helper()
	sess := &domain.CoachSession{}
	for _, input := range []string{"a", "b", "c", "d", "e"} {
		if _, err := w.Submit(sess, input); err != nil {
			t.Fatalf("Submit(%q) failed: %v", input, err)
		}
	}
	return sess
}
