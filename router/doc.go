// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Planning Poker API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Session lifecycle:

	POST /sessions                       - Create session (returns organizer key)
	POST /sessions/import                - Create session from an exported snapshot
	POST /sessions/{id}/join             - Join by session code
	GET  /sessions/{id}/export/state     - Download full-state snapshot
	GET  /sessions/{id}/export/results   - Download results-only snapshot

Game control (organizer, requires X-Organizer-Key):

	POST /sessions/{id}/start  - Begin estimating the first item
	POST /sessions/{id}/reveal - Unmask all votes
	POST /sessions/{id}/resume - Resume a paused timer
	POST /sessions/{id}/revote - Open a new voting round on the same item
	POST /sessions/{id}/next   - Record the result and advance (or finish)

Player operations (requires X-Player-Name):

	POST /sessions/{id}/vote - Cast or change a vote

Polling reads:

	GET /sessions/{id}/state        - Game state, votes filtered for the viewer
	GET /sessions/{id}/participants - Roster and session status

Chat:

	GET  /sessions/{id}/chat - Recent messages, oldest first
	POST /sessions/{id}/chat - Post a message (requires X-Player-Name)

# Handler Initialization

The router builds the session service over the database handle, then hands
it to each handler:

	svc := session.NewService(store.NewSQL(db), cfg.OrganizerKeySalt)
	sessionHandler := handlers.NewSessionHandler(svc)
	gameHandler := handlers.NewGameHandler(svc)
	stateHandler := handlers.NewStateHandler(svc)
	chatHandler := handlers.NewChatHandler(svc)
*/
package router
