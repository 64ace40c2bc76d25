// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/planning-poker/game"
	"github.com/danielhkuo/planning-poker/models"
	"github.com/danielhkuo/planning-poker/store"
)

// Start begins (or restarts) voting on the current item: every vote is
// cleared, the round counter returns to 1 and the countdown starts now.
// The backlog position is deliberately untouched.
func (s *Service) Start(ctx context.Context, id, organizerKey string) error {
	sess, err := s.loadSession(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOrganizer(id, organizerKey); err != nil {
		return err
	}
	if sess.Status == models.StatusFinished {
		return ErrAlreadyFinished
	}

	if err := s.store.ResetVotes(ctx, id); err != nil {
		return err
	}

	status := models.StatusStarted
	reveal := false
	round := 1
	timerStart := s.now().Unix()
	return s.store.UpdateSession(ctx, id, store.SessionPatch{
		Status:              &status,
		Reveal:              &reveal,
		RoundNumber:         &round,
		TimerStartedAt:      &timerStart,
		ClearPauseRemaining: true,
	})
}

// CastVote records one participant's card. A caller who somehow never
// joined (lost seat, stale client) is seated on the spot instead of being
// rejected.
func (s *Service) CastVote(ctx context.Context, id, name, vote string) error {
	if name == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if !game.ValidVote(vote) {
		return fmt.Errorf("%w: %q is not a playable card", ErrInvalidInput, vote)
	}

	if _, err := s.loadSession(ctx, id); err != nil {
		return err
	}

	updated, err := s.store.SetVote(ctx, id, name, &vote)
	if err != nil {
		return err
	}
	if !updated {
		slog.Warn("vote from unseated participant, seating them", "session_id", id, "name", name)
		return s.store.AddParticipant(ctx, id, &models.Participant{
			Name:       name,
			AvatarSeed: models.DefaultAvatarSeed,
			Vote:       &vote,
			HasVoted:   true,
		})
	}
	return nil
}

// Reveal makes all votes visible. Votes themselves are not mutated.
func (s *Service) Reveal(ctx context.Context, id, organizerKey string) error {
	sess, err := s.loadSession(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOrganizer(id, organizerKey); err != nil {
		return err
	}
	if sess.Status == models.StatusFinished {
		return ErrAlreadyFinished
	}

	reveal := true
	return s.store.UpdateSession(ctx, id, store.SessionPatch{Reveal: &reveal})
}

// PollState is the polling read surface: the live session state as seen by
// viewerName, votes already masked.
//
// It has one documented side effect: when every participant is holding the
// coffee-break card, the session is paused and the countdown's remaining
// seconds are banked. The transition is a compare-and-set on status, so any
// number of concurrent pollers apply it exactly once.
func (s *Service) PollState(ctx context.Context, id, viewerName string) (*models.GameStateResponse, error) {
	sess, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	participants, err := s.store.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}

	votes := rawVotes(participants)
	allVoted := game.AllVoted(votes)
	allBreak := game.AllBreak(votes)
	unanimous, unanimousValue := game.Unanimity(votes)

	if allBreak && sess.Status != models.StatusPaused && sess.Status != models.StatusFinished {
		s.pauseForBreak(ctx, sess)
	}

	currentItem := ""
	if sess.CurrentIndex >= 0 && sess.CurrentIndex < len(sess.Backlog) {
		currentItem = sess.Backlog[sess.CurrentIndex]
	}

	resp := &models.GameStateResponse{
		Participants:       game.VisibleVotes(participants, sess.Reveal, viewerName, sess.Organizer),
		AllVoted:           allVoted,
		AllBreak:           allBreak,
		Unanimous:          unanimous,
		UnanimousValue:     unanimousValue,
		Reveal:             sess.Reveal,
		CurrentItem:        currentItem,
		History:            sess.History,
		DecisionMode:       sess.DecisionMode,
		RoundNumber:        sess.RoundNumber,
		TimePerItemMinutes: sess.TimePerItemMinutes,
		TimerStartedAt:     sess.TimerStartedAt,
		Status:             sess.Status,
	}
	if sess.Reveal {
		res := game.Resolve(sess.DecisionMode, sess.RoundNumber, votes)
		resp.Resolution = &res
	}
	return resp, nil
}

// pauseForBreak transitions an active session to paused, banking whatever is
// left on the item countdown. Losing the compare-and-set means another
// poller already paused; the local view is updated either way.
func (s *Service) pauseForBreak(ctx context.Context, sess *models.Session) {
	status := models.StatusPaused
	patch := store.SessionPatch{
		Status:              &status,
		ClearTimerStartedAt: true,
		ClearPauseRemaining: true,
	}
	if sess.TimerStartedAt != nil {
		elapsed := s.now().Unix() - *sess.TimerStartedAt
		remaining := int64(sess.TimePerItemMinutes)*60 - elapsed
		if remaining < 0 {
			remaining = 0
		}
		patch.PauseRemaining = &remaining
		patch.ClearPauseRemaining = false
	}

	applied, err := s.store.UpdateSessionGuarded(ctx, sess.ID, patch, store.Guard{
		StatusNot: []string{models.StatusPaused, models.StatusFinished},
	})
	if err != nil {
		slog.Error("failed to pause session for coffee break", "session_id", sess.ID, "error", err)
		return
	}
	if applied {
		slog.Info("session paused for coffee break", "session_id", sess.ID)
	}

	sess.Status = models.StatusPaused
	sess.TimerStartedAt = nil
}

// Resume restarts a paused session, continuing the countdown where the
// pause banked it. Resuming a session that is not paused is a no-op, not an
// error; the returned bool reports whether the transition applied.
func (s *Service) Resume(ctx context.Context, id, organizerKey string) (bool, error) {
	sess, err := s.loadSession(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.requireOrganizer(id, organizerKey); err != nil {
		return false, err
	}
	if sess.Status != models.StatusPaused {
		return false, nil
	}

	now := s.now().Unix()
	newTimerStart := now
	if sess.PauseRemaining != nil && *sess.PauseRemaining > 0 {
		total := int64(sess.TimePerItemMinutes) * 60
		newTimerStart = now - (total - *sess.PauseRemaining)
	}

	if err := s.store.ResetVotes(ctx, id); err != nil {
		return false, err
	}

	status := models.StatusStarted
	applied, err := s.store.UpdateSessionGuarded(ctx, id, store.SessionPatch{
		Status:              &status,
		TimerStartedAt:      &newTimerStart,
		ClearPauseRemaining: true,
	}, store.Guard{
		StatusNot: []string{models.StatusWaiting, models.StatusStarted, models.StatusFinished},
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// Revote opens a new round on the same item: votes cleared, cards hidden
// again, round counter incremented. From round 2 on, the configured decision
// mode replaces forced unanimity.
func (s *Service) Revote(ctx context.Context, id, organizerKey string) error {
	sess, err := s.loadSession(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOrganizer(id, organizerKey); err != nil {
		return err
	}
	if sess.Status == models.StatusFinished {
		return ErrAlreadyFinished
	}

	if err := s.store.ResetVotes(ctx, id); err != nil {
		return err
	}

	reveal := false
	round := sess.RoundNumber + 1
	return s.store.UpdateSession(ctx, id, store.SessionPatch{
		Reveal:           &reveal,
		RoundNumber:      &round,
		ClearFinalResult: true,
	})
}

// NextItem concludes the current item: the votes are snapshotted into
// history with the caller-supplied result (or a best-effort fallback), and
// the session either advances to the next item or finishes.
//
// The write is guarded on the current backlog position, so a duplicate
// submission (double-click) finds the index already advanced and reports
// applied == false instead of re-appending history.
func (s *Service) NextItem(ctx context.Context, id, organizerKey string, result *string) (bool, error) {
	sess, err := s.loadSession(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.requireOrganizer(id, organizerKey); err != nil {
		return false, err
	}
	if sess.Status == models.StatusFinished {
		return false, ErrAlreadyFinished
	}

	participants, err := s.store.ListParticipants(ctx, id)
	if err != nil {
		return false, err
	}
	votes := rawVotes(participants)

	if result == nil {
		result = game.FallbackResult(votes)
	}

	item := ""
	if sess.CurrentIndex >= 0 && sess.CurrentIndex < len(sess.Backlog) {
		item = sess.Backlog[sess.CurrentIndex]
	}

	entry := models.HistoryEntry{
		Item:   item,
		Result: result,
		Votes:  make([]models.HistoryVote, 0, len(participants)),
	}
	for _, p := range participants {
		entry.Votes = append(entry.Votes, models.HistoryVote{
			Name:       p.Name,
			AvatarSeed: p.AvatarSeed,
			Vote:       p.Vote,
		})
	}

	historyJSON, err := json.Marshal(append(sess.History, entry))
	if err != nil {
		return false, fmt.Errorf("failed to encode history: %w", err)
	}
	historyStr := string(historyJSON)

	guard := store.Guard{
		StatusNot:    []string{models.StatusFinished},
		CurrentIndex: &sess.CurrentIndex,
	}

	reveal := false
	var patch store.SessionPatch
	if sess.CurrentIndex < len(sess.Backlog)-1 {
		status := models.StatusStarted
		nextIndex := sess.CurrentIndex + 1
		round := 1
		timerStart := s.now().Unix()
		patch = store.SessionPatch{
			Status:           &status,
			CurrentIndex:     &nextIndex,
			Reveal:           &reveal,
			RoundNumber:      &round,
			TimerStartedAt:   &timerStart,
			ClearFinalResult: true,
			HistoryJSON:      &historyStr,
		}
	} else {
		status := models.StatusFinished
		reveal = true
		patch = store.SessionPatch{
			Status:              &status,
			Reveal:              &reveal,
			FinalResult:         result,
			ClearFinalResult:    result == nil,
			ClearTimerStartedAt: true,
			HistoryJSON:         &historyStr,
		}
	}

	applied, err := s.store.UpdateSessionGuarded(ctx, id, patch, guard)
	if err != nil {
		return false, err
	}
	if !applied {
		slog.Warn("next-item ignored, session already advanced", "session_id", id)
		return false, nil
	}

	if err := s.store.ResetVotes(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Participants is the waiting-room read: the roster plus session status.
// Votes go through the visibility filter like every other read surface.
func (s *Service) Participants(ctx context.Context, id, viewerName string) (*models.ParticipantsResponse, error) {
	sess, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	participants, err := s.store.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ParticipantsResponse{
		Participants: game.VisibleVotes(participants, sess.Reveal, viewerName, sess.Organizer),
		Status:       sess.Status,
	}, nil
}

func rawVotes(participants []models.Participant) []*string {
	votes := make([]*string, len(participants))
	for i, p := range participants {
		votes[i] = p.Vote
	}
	return votes
}
