package wizard

import (
	"fmt"
	"strings"

	"github.com/carescene/carescene/internal/domain"
)

// Composer renders a complete profile into the final generation prompt.
// StyleSuffix is a fixed policy string appended to every prompt; it comes
// from configuration, not from user input.
type Composer struct {
	StyleSuffix string
}

func NewComposer(styleSuffix string) *Composer {
	return &Composer{StyleSuffix: styleSuffix}
}

// Compose is pure and deterministic: the same profile and note always
// produce the same string. The revision note, when present, is appended
// after the suffix so the original descriptive content is never lost.
// Returns domain.ErrIncompleteProfile if any attribute is still empty.
func (c *Composer) Compose(p *domain.PatientProfile, revisionNote string) (string, error) {
	if !p.Complete() {
		return "", domain.ErrIncompleteProfile
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"A patient who is %s, aged %s, of %s. The patient is %s, and the interaction with the doctor shows %s.",
		p.GenderIdentity, p.Age, p.Ethnicity, p.Health, p.Interaction,
	)
	if c.StyleSuffix != "" {
		b.WriteString(" ")
		b.WriteString(c.StyleSuffix)
	}
	if note := strings.TrimSpace(revisionNote); note != "" {
		fmt.Fprintf(&b, " Revision request: %s", note)
	}
	return b.String(), nil
}
