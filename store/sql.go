// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/planning-poker/models"
)

// SQL implements Store on top of database/sql. The statements use $N
// placeholders, which both PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite)
// accept, so one implementation serves both configured database types.
type SQL struct {
	db *sql.DB
}

// NewSQL wraps an open database handle.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

var _ Store = (*SQL)(nil)

func (s *SQL) CreateSession(ctx context.Context, sess *models.Session) error {
	backlogJSON, err := json.Marshal(sess.Backlog)
	if err != nil {
		return fmt.Errorf("failed to encode backlog: %w", err)
	}
	history := sess.History
	if history == nil {
		history = []models.HistoryEntry{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	createdAt := sess.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (id, organizer, status, decision_mode, backlog, current_index,
		                     round_number, reveal, final_result, time_per_item,
		                     timer_started_at, pause_remaining, history, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, sess.ID, sess.Organizer, sess.Status, sess.DecisionMode, string(backlogJSON),
		sess.CurrentIndex, sess.RoundNumber, sess.Reveal, sess.FinalResult,
		sess.TimePerItemMinutes, sess.TimerStartedAt, sess.PauseRemaining,
		string(historyJSON), createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *SQL) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var (
		sess        models.Session
		backlogJSON string
		historyJSON string
		finalResult sql.NullString
		timerStart  sql.NullInt64
		pauseLeft   sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, organizer, status, decision_mode, backlog, current_index,
		       round_number, reveal, final_result, time_per_item,
		       timer_started_at, pause_remaining, history, created_at
		FROM session
		WHERE id = $1
	`, id).Scan(
		&sess.ID, &sess.Organizer, &sess.Status, &sess.DecisionMode, &backlogJSON,
		&sess.CurrentIndex, &sess.RoundNumber, &sess.Reveal, &finalResult,
		&sess.TimePerItemMinutes, &timerStart, &pauseLeft, &historyJSON, &sess.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if finalResult.Valid {
		sess.FinalResult = &finalResult.String
	}
	if timerStart.Valid {
		sess.TimerStartedAt = &timerStart.Int64
	}
	if pauseLeft.Valid {
		sess.PauseRemaining = &pauseLeft.Int64
	}

	if err := json.Unmarshal([]byte(backlogJSON), &sess.Backlog); err != nil {
		return nil, fmt.Errorf("failed to decode backlog: %w", err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &sess.History); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	return &sess, nil
}

func (s *SQL) SessionExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM session WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check session existence: %w", err)
	}
	return exists, nil
}

func (s *SQL) UpdateSession(ctx context.Context, id string, patch SessionPatch) error {
	set, args := patchAssignments(patch)
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(
		"UPDATE session SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args),
	), args...)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) UpdateSessionGuarded(ctx context.Context, id string, patch SessionPatch, guard Guard) (bool, error) {
	set, args := patchAssignments(patch)
	if len(set) == 0 {
		return false, nil
	}

	args = append(args, id)
	where := []string{fmt.Sprintf("id = $%d", len(args))}

	if len(guard.StatusNot) > 0 {
		ph := make([]string, len(guard.StatusNot))
		for i, st := range guard.StatusNot {
			args = append(args, st)
			ph[i] = fmt.Sprintf("$%d", len(args))
		}
		where = append(where, fmt.Sprintf("status NOT IN (%s)", strings.Join(ph, ", ")))
	}
	if guard.CurrentIndex != nil {
		args = append(args, *guard.CurrentIndex)
		where = append(where, fmt.Sprintf("current_index = $%d", len(args)))
	}

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(
		"UPDATE session SET %s WHERE %s",
		strings.Join(set, ", "), strings.Join(where, " AND "),
	), args...)
	if err != nil {
		return false, fmt.Errorf("failed to update session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// patchAssignments builds the SET clause for a session patch. Placeholders
// are numbered from $1; callers append their WHERE arguments after these.
func patchAssignments(patch SessionPatch) ([]string, []any) {
	var (
		set  []string
		args []any
	)
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Reveal != nil {
		add("reveal", *patch.Reveal)
	}
	if patch.RoundNumber != nil {
		add("round_number", *patch.RoundNumber)
	}
	if patch.CurrentIndex != nil {
		add("current_index", *patch.CurrentIndex)
	}
	if patch.FinalResult != nil {
		add("final_result", *patch.FinalResult)
	} else if patch.ClearFinalResult {
		set = append(set, "final_result = NULL")
	}
	if patch.TimerStartedAt != nil {
		add("timer_started_at", *patch.TimerStartedAt)
	} else if patch.ClearTimerStartedAt {
		set = append(set, "timer_started_at = NULL")
	}
	if patch.PauseRemaining != nil {
		add("pause_remaining", *patch.PauseRemaining)
	} else if patch.ClearPauseRemaining {
		set = append(set, "pause_remaining = NULL")
	}
	if patch.HistoryJSON != nil {
		add("history", *patch.HistoryJSON)
	}

	return set, args
}

func (s *SQL) DeleteSession(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first so the delete works without foreign_keys enabled.
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_message WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM participant WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM session WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (s *SQL) AddParticipant(ctx context.Context, sessionID string, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO participant (id, session_id, name, avatar_seed, vote, has_voted, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (session_id, name) DO NOTHING
	`, p.ID, sessionID, p.Name, p.AvatarSeed, p.Vote, p.HasVoted, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

func (s *SQL) ListParticipants(ctx context.Context, sessionID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, avatar_seed, vote, has_voted
		FROM participant
		WHERE session_id = $1
		ORDER BY joined_at, name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var (
			p    models.Participant
			vote sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.AvatarSeed, &vote, &p.HasVoted); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if vote.Valid {
			p.Vote = &vote.String
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func (s *SQL) SetVote(ctx context.Context, sessionID, name string, vote *string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE participant
		SET vote = $3, has_voted = $4
		WHERE session_id = $1 AND name = $2
	`, sessionID, name, vote, vote != nil)
	if err != nil {
		return false, fmt.Errorf("failed to update vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQL) ResetVotes(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE participant
		SET vote = NULL, has_voted = FALSE
		WHERE session_id = $1
	`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to reset votes: %w", err)
	}
	return nil
}

func (s *SQL) AddChatMessage(ctx context.Context, sessionID string, m *models.ChatMessage) error {
	if m.Timestamp == 0 {
		m.Timestamp = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_message (id, session_id, sender, text, ts)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), sessionID, m.Sender, m.Text, m.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

func (s *SQL) ListChatMessages(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	// Newest first to apply the cap, then reversed into timestamp order.
	rows, err := s.db.QueryContext(ctx, `
		SELECT sender, text, ts
		FROM chat_message
		WHERE session_id = $1
		ORDER BY ts DESC, id DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.Sender, &m.Text, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
