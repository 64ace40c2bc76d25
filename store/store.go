// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/planning-poker/models"
)

// ErrNotFound is returned when a session (or a record scoped to one) does
// not exist.
var ErrNotFound = errors.New("not found")

// SessionPatch is a partial update to a session row. Nil pointer fields are
// left untouched; the Clear* flags set their nullable column to NULL.
type SessionPatch struct {
	Status              *string
	Reveal              *bool
	RoundNumber         *int
	CurrentIndex        *int
	FinalResult         *string
	ClearFinalResult    bool
	TimerStartedAt      *int64
	ClearTimerStartedAt bool
	PauseRemaining      *int64
	ClearPauseRemaining bool
	HistoryJSON         *string
}

// Guard restricts a patch to sessions still in the expected state. Used as a
// compare-and-set so concurrent writers (pollers pausing, organizers
// double-submitting next-item) cannot double-apply a transition.
type Guard struct {
	// StatusNot rejects the patch when the current status is any of these.
	StatusNot []string
	// CurrentIndex rejects the patch unless current_index still matches.
	CurrentIndex *int
}

// Store is the persistence boundary for session aggregates. Implementations
// must keep every method safe for concurrent use across goroutines.
type Store interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	SessionExists(ctx context.Context, id string) (bool, error)
	// UpdateSession applies the patch unconditionally, returning ErrNotFound
	// for an unknown session id.
	UpdateSession(ctx context.Context, id string, patch SessionPatch) error
	// UpdateSessionGuarded applies the patch only while the guard holds and
	// reports whether it did.
	UpdateSessionGuarded(ctx context.Context, id string, patch SessionPatch, guard Guard) (bool, error)
	DeleteSession(ctx context.Context, id string) error

	// AddParticipant inserts a seat; a duplicate display name within the
	// session is a no-op.
	AddParticipant(ctx context.Context, sessionID string, p *models.Participant) error
	ListParticipants(ctx context.Context, sessionID string) ([]models.Participant, error)
	// SetVote records one participant's vote and reports whether a matching
	// seat existed.
	SetVote(ctx context.Context, sessionID, name string, vote *string) (bool, error)
	ResetVotes(ctx context.Context, sessionID string) error

	AddChatMessage(ctx context.Context, sessionID string, m *models.ChatMessage) error
	// ListChatMessages returns the most recent limit messages in ascending
	// timestamp order.
	ListChatMessages(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}
