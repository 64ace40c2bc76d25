// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/danielhkuo/planning-poker/models"
	"github.com/danielhkuo/planning-poker/testutil"
)

func newTestStore(t *testing.T) *SQL {
	t.Helper()
	return NewSQL(testutil.SetupTestDB(t))
}

func seedSession(t *testing.T, s *SQL, id, status string) *models.Session {
	t.Helper()
	sess := &models.Session{
		ID:                 id,
		Organizer:          "Alice",
		Status:             status,
		DecisionMode:       models.ModeStrict,
		Backlog:            []string{"Login page", "Search"},
		CurrentIndex:       0,
		RoundNumber:        1,
		TimePerItemMinutes: 5,
		History:            []models.HistoryEntry{},
	}
	if err := s.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	return sess
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSession(t, s, "ABC123", models.StatusWaiting)

	got, err := s.GetSession(ctx, "ABC123")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.Organizer != "Alice" || got.Status != models.StatusWaiting {
		t.Errorf("GetSession() = %+v", got)
	}
	if len(got.Backlog) != 2 || got.Backlog[0] != "Login page" {
		t.Errorf("backlog = %v", got.Backlog)
	}
	if got.History == nil || len(got.History) != 0 {
		t.Errorf("history = %v, want empty slice", got.History)
	}
	if got.TimerStartedAt != nil || got.PauseRemaining != nil || got.FinalResult != nil {
		t.Error("nullable columns should scan as nil")
	}

	if _, err := s.GetSession(ctx, "ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession(missing) error = %v, want ErrNotFound", err)
	}

	exists, err := s.SessionExists(ctx, "ABC123")
	if err != nil || !exists {
		t.Errorf("SessionExists() = (%v, %v), want true", exists, err)
	}
	exists, _ = s.SessionExists(ctx, "ZZZZZZ")
	if exists {
		t.Error("SessionExists(missing) = true")
	}
}

func TestUpdateSessionPatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSession(t, s, "ABC123", models.StatusWaiting)

	status := models.StatusStarted
	timer := int64(1_700_000_000)
	if err := s.UpdateSession(ctx, "ABC123", SessionPatch{
		Status:         &status,
		TimerStartedAt: &timer,
	}); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}

	got, _ := s.GetSession(ctx, "ABC123")
	if got.Status != models.StatusStarted {
		t.Errorf("status = %q, want started", got.Status)
	}
	if got.TimerStartedAt == nil || *got.TimerStartedAt != timer {
		t.Errorf("timer = %v, want %d", got.TimerStartedAt, timer)
	}
	// Untouched fields survive
	if got.DecisionMode != models.ModeStrict || got.CurrentIndex != 0 {
		t.Errorf("patch touched unrelated fields: %+v", got)
	}

	// Clear flags null the column out again
	if err := s.UpdateSession(ctx, "ABC123", SessionPatch{ClearTimerStartedAt: true}); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}
	got, _ = s.GetSession(ctx, "ABC123")
	if got.TimerStartedAt != nil {
		t.Errorf("timer = %v, want cleared", got.TimerStartedAt)
	}

	if err := s.UpdateSession(ctx, "ZZZZZZ", SessionPatch{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateSession(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateSessionGuarded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSession(t, s, "ABC123", models.StatusStarted)

	t.Run("status guard blocks", func(t *testing.T) {
		paused := models.StatusPaused
		applied, err := s.UpdateSessionGuarded(ctx, "ABC123", SessionPatch{Status: &paused}, Guard{
			StatusNot: []string{models.StatusStarted},
		})
		if err != nil {
			t.Fatalf("UpdateSessionGuarded() error = %v", err)
		}
		if applied {
			t.Error("guard on current status should have blocked the write")
		}
	})

	t.Run("status guard passes", func(t *testing.T) {
		paused := models.StatusPaused
		applied, err := s.UpdateSessionGuarded(ctx, "ABC123", SessionPatch{Status: &paused}, Guard{
			StatusNot: []string{models.StatusPaused, models.StatusFinished},
		})
		if err != nil || !applied {
			t.Fatalf("UpdateSessionGuarded() = (%v, %v), want applied", applied, err)
		}

		// Second identical transition loses the compare-and-set
		applied, err = s.UpdateSessionGuarded(ctx, "ABC123", SessionPatch{Status: &paused}, Guard{
			StatusNot: []string{models.StatusPaused, models.StatusFinished},
		})
		if err != nil {
			t.Fatalf("UpdateSessionGuarded() error = %v", err)
		}
		if applied {
			t.Error("duplicate transition should lose the compare-and-set")
		}
	})

	t.Run("index guard detects concurrent advance", func(t *testing.T) {
		// Simulates two organizers advancing from index 0 at once: the
		// first write moves the index, the second must find it changed.
		seedSession(t, s, "DEF456", models.StatusStarted)

		observed := 0
		next := 1
		applied, err := s.UpdateSessionGuarded(ctx, "DEF456", SessionPatch{CurrentIndex: &next}, Guard{
			CurrentIndex: &observed,
		})
		if err != nil || !applied {
			t.Fatalf("first advance = (%v, %v), want applied", applied, err)
		}

		applied, err = s.UpdateSessionGuarded(ctx, "DEF456", SessionPatch{CurrentIndex: &next}, Guard{
			CurrentIndex: &observed,
		})
		if err != nil {
			t.Fatalf("UpdateSessionGuarded() error = %v", err)
		}
		if applied {
			t.Error("stale index should lose the compare-and-set")
		}

		got, _ := s.GetSession(ctx, "DEF456")
		if got.CurrentIndex != 1 {
			t.Errorf("index = %d, want 1 (advanced exactly once)", got.CurrentIndex)
		}
	})
}

func TestParticipants(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSession(t, s, "ABC123", models.StatusWaiting)

	if err := s.AddParticipant(ctx, "ABC123", &models.Participant{
		Name:       "Bob",
		AvatarSeed: "ninja",
	}); err != nil {
		t.Fatalf("AddParticipant() error = %v", err)
	}

	t.Run("duplicate name is a no-op", func(t *testing.T) {
		if err := s.AddParticipant(ctx, "ABC123", &models.Participant{
			Name:       "Bob",
			AvatarSeed: "pirate",
		}); err != nil {
			t.Fatalf("duplicate AddParticipant() error = %v", err)
		}
		ps, _ := s.ListParticipants(ctx, "ABC123")
		if len(ps) != 1 {
			t.Fatalf("got %d participants, want 1", len(ps))
		}
		if ps[0].AvatarSeed != "ninja" {
			t.Errorf("rejoin must not overwrite the seat, avatar = %q", ps[0].AvatarSeed)
		}
	})

	t.Run("set and reset votes", func(t *testing.T) {
		vote := "5"
		updated, err := s.SetVote(ctx, "ABC123", "Bob", &vote)
		if err != nil || !updated {
			t.Fatalf("SetVote() = (%v, %v), want updated", updated, err)
		}

		updated, err = s.SetVote(ctx, "ABC123", "Ghost", &vote)
		if err != nil {
			t.Fatalf("SetVote() error = %v", err)
		}
		if updated {
			t.Error("SetVote() for unknown participant should report false")
		}

		ps, _ := s.ListParticipants(ctx, "ABC123")
		if ps[0].Vote == nil || *ps[0].Vote != "5" || !ps[0].HasVoted {
			t.Errorf("participant after vote = %+v", ps[0])
		}

		if err := s.ResetVotes(ctx, "ABC123"); err != nil {
			t.Fatalf("ResetVotes() error = %v", err)
		}
		ps, _ = s.ListParticipants(ctx, "ABC123")
		if ps[0].Vote != nil || ps[0].HasVoted {
			t.Errorf("participant after reset = %+v", ps[0])
		}
	})
}

func TestChatMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSession(t, s, "ABC123", models.StatusWaiting)

	for i := 0; i < 5; i++ {
		if err := s.AddChatMessage(ctx, "ABC123", &models.ChatMessage{
			Sender:    "Alice",
			Text:      fmt.Sprintf("message %d", i),
			Timestamp: int64(1_700_000_000 + i),
		}); err != nil {
			t.Fatalf("AddChatMessage() error = %v", err)
		}
	}

	t.Run("limit keeps the newest, ordered ascending", func(t *testing.T) {
		msgs, err := s.ListChatMessages(ctx, "ABC123", 3)
		if err != nil {
			t.Fatalf("ListChatMessages() error = %v", err)
		}
		if len(msgs) != 3 {
			t.Fatalf("got %d messages, want 3", len(msgs))
		}
		if msgs[0].Text != "message 2" || msgs[2].Text != "message 4" {
			t.Errorf("window = [%s .. %s], want [message 2 .. message 4]", msgs[0].Text, msgs[2].Text)
		}
	})

	t.Run("empty session", func(t *testing.T) {
		seedSession(t, s, "DEF456", models.StatusWaiting)
		msgs, err := s.ListChatMessages(ctx, "DEF456", 10)
		if err != nil {
			t.Fatalf("ListChatMessages() error = %v", err)
		}
		if len(msgs) != 0 {
			t.Errorf("got %d messages, want 0", len(msgs))
		}
	})
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSession(t, s, "ABC123", models.StatusWaiting)
	if err := s.AddParticipant(ctx, "ABC123", &models.Participant{Name: "Bob", AvatarSeed: "ninja"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddChatMessage(ctx, "ABC123", &models.ChatMessage{Sender: "Bob", Text: "hi"}); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteSession(ctx, "ABC123"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	if _, err := s.GetSession(ctx, "ABC123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession() after delete error = %v, want ErrNotFound", err)
	}
	ps, err := s.ListParticipants(ctx, "ABC123")
	if err != nil || len(ps) != 0 {
		t.Errorf("participants after delete = (%v, %v), want empty", ps, err)
	}
	msgs, err := s.ListChatMessages(ctx, "ABC123", 10)
	if err != nil || len(msgs) != 0 {
		t.Errorf("chat after delete = (%v, %v), want empty", msgs, err)
	}

	if err := s.DeleteSession(ctx, "ABC123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete error = %v, want ErrNotFound", err)
	}
}
