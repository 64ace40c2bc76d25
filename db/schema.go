// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is deliberately portable between PostgreSQL and SQLite: epoch
// seconds in BIGINT columns instead of TIMESTAMP defaults, JSON stored as
// TEXT, and no server-side functions.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Sessions (one estimation game per row; backlog and history as JSON text)
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    organizer TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'waiting' CHECK (status IN ('waiting', 'started', 'paused', 'finished')),
    decision_mode TEXT NOT NULL DEFAULT 'strict',
    backlog TEXT NOT NULL,
    current_index INTEGER NOT NULL DEFAULT 0,
    round_number INTEGER NOT NULL DEFAULT 1,
    reveal BOOLEAN NOT NULL DEFAULT FALSE,
    final_result TEXT,
    time_per_item INTEGER NOT NULL,
    timer_started_at BIGINT,
    pause_remaining BIGINT,
    history TEXT NOT NULL DEFAULT '[]',
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_status ON session(status);

-- Participants (one seat per display name per session)
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    avatar_seed TEXT NOT NULL,
    vote TEXT,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    joined_at BIGINT NOT NULL,
    UNIQUE (session_id, name)
);

CREATE INDEX IF NOT EXISTS idx_participant_session_id ON participant(session_id);

-- Chat messages (append-only, read capped at the most recent 200)
CREATE TABLE IF NOT EXISTS chat_message (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    sender TEXT NOT NULL,
    text TEXT NOT NULL,
    ts BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_message_session_ts ON chat_message(session_id, ts);
`
