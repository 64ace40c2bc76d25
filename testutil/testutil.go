// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/planning-poker/auth"
	"github.com/danielhkuo/planning-poker/cliparse"
	dbschema "github.com/danielhkuo/planning-poker/db"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SetupTestDB opens an in-memory SQLite database with the full schema.
// Each test gets a fresh database; closing is handled by t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// An in-memory database exists per connection; keep exactly one.
	db.SetMaxOpenConns(1)

	if err := dbschema.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3320,
		DatabaseURL:      ":memory:",
		DatabaseType:     "sqlite",
		OrganizerKeySalt: "test-organizer-salt",
	}
}

// CreateTestSession inserts a session row directly and returns its ID and
// organizer key. status should be one of waiting/started/paused/finished.
func CreateTestSession(t *testing.T, db *sql.DB, cfg cliparse.Config, organizer, status string, backlog []string) (sessionID, organizerKey string) {
	t.Helper()

	sessionID, err := auth.GenerateSessionCode()
	if err != nil {
		t.Fatalf("Failed to generate session code: %v", err)
	}
	organizerKey = auth.GenerateOrganizerKey(sessionID, cfg.OrganizerKeySalt)

	backlogJSON, err := json.Marshal(backlog)
	if err != nil {
		t.Fatalf("Failed to marshal backlog: %v", err)
	}

	var timerStartedAt *int64
	if status == "started" {
		ts := time.Now().Unix()
		timerStartedAt = &ts
	}

	_, err = db.Exec(`
		INSERT INTO session (id, organizer, status, decision_mode, backlog, current_index, round_number, reveal, time_per_item, timer_started_at, history, created_at)
		VALUES ($1, $2, $3, 'strict', $4, 0, 1, FALSE, 5, $5, '[]', $6)
	`, sessionID, organizer, status, string(backlogJSON), timerStartedAt, time.Now().Unix())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	AddTestParticipant(t, db, sessionID, organizer)

	return sessionID, organizerKey
}

// AddTestParticipant seats a participant in a session.
func AddTestParticipant(t *testing.T, db *sql.DB, sessionID, name string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO participant (id, session_id, name, avatar_seed, has_voted, joined_at)
		VALUES ($1, $2, $3, 'astronaut', FALSE, $4)
	`, uuid.NewString(), sessionID, name, time.Now().Unix())
	if err != nil {
		t.Fatalf("Failed to add test participant: %v", err)
	}
}

// SetTestVote records a vote for a participant directly.
func SetTestVote(t *testing.T, db *sql.DB, sessionID, name, vote string) {
	t.Helper()

	res, err := db.Exec(`
		UPDATE participant SET vote = $1, has_voted = TRUE
		WHERE session_id = $2 AND name = $3
	`, vote, sessionID, name)
	if err != nil {
		t.Fatalf("Failed to set test vote: %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		t.Fatalf("No participant %q in session %q", name, sessionID)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
