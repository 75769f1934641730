package domain

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Turn roles.
const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// Chat maps a Telegram chat to its active coaching session.
type Chat struct {
	ID              int64
	ActiveSessionID *uuid.UUID
	CreatedAt       time.Time
}

// CoachSession is one run of the guided conversation. Step is monotonic:
// 0..len(Attributes)-1 while collecting, len(Attributes) once complete.
// FinalPrompt is set exactly once, when the profile becomes complete.
type CoachSession struct {
	ID               uuid.UUID
	ChatID           int64
	Step             int
	Profile          PatientProfile
	FinalPrompt      *string
	RevisionsUsed    int
	AwaitingRevision bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Completed reports whether all attributes have been collected.
func (s *CoachSession) Completed() bool {
	return s.Step >= len(Attributes)
}

// Turn is one transcript entry. Ordering is by insertion (id ascending).
type Turn struct {
	ID        int64
	SessionID uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

// Render is one generation attempt, appended per request and never mutated.
type Render struct {
	ID           int64
	SessionID    uuid.UUID
	PromptUsed   string
	ImageURL     string
	Succeeded    bool
	ErrorMessage string
	Cost         decimal.Decimal
	CreatedAt    time.Time
}

// Displayable reports whether the render's image URL may be shown or
// embedded: the attempt succeeded and the URL is a fetchable http(s) link.
func (r *Render) Displayable() bool {
	if !r.Succeeded || r.ImageURL == "" {
		return false
	}
	u, err := url.Parse(r.ImageURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
