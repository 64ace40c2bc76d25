// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielhkuo/planning-poker/models"
	"github.com/danielhkuo/planning-poker/session"
	"github.com/danielhkuo/planning-poker/store"
	"github.com/danielhkuo/planning-poker/testutil"
)

// newTestService builds a session service over a fresh in-memory database.
func newTestService(t *testing.T) *session.Service {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return session.NewService(store.NewSQL(db), testutil.GetTestConfig().OrganizerKeySalt)
}

// createSession creates a session through the service and returns its id and
// organizer key.
func createSession(t *testing.T, svc *session.Service, backlog []string) (string, string) {
	t.Helper()
	resp, err := svc.Create(context.Background(), models.CreateSessionRequest{
		Organizer: "Alice",
		Backlog:   backlog,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return resp.SessionID, resp.OrganizerKey
}

// withID attaches the {id} path value the router would have extracted.
func withID(r *http.Request, id string) *http.Request {
	r.SetPathValue("id", id)
	return r
}
