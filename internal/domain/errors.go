package domain

import "errors"

var (
	ErrEmptyInput         = errors.New("empty input")
	ErrIncompleteProfile  = errors.New("profile is incomplete")
	ErrSessionComplete    = errors.New("session already complete")
	ErrSessionNotComplete = errors.New("session not complete")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoSuccessfulRender = errors.New("no successful render exists")
	ErrRevisionsExhausted = errors.New("revision limit reached")
	ErrActiveRequest      = errors.New("active request exists")

	// Generation collaborator failure kinds.
	ErrContentPolicy      = errors.New("content policy violation")
	ErrBadRequest         = errors.New("bad generation request")
	ErrServiceUnavailable = errors.New("generation service unavailable")
)
