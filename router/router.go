// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/planning-poker/cliparse"
	"github.com/danielhkuo/planning-poker/handlers"
	"github.com/danielhkuo/planning-poker/middleware"
	"github.com/danielhkuo/planning-poker/session"
	"github.com/danielhkuo/planning-poker/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	svc := session.NewService(store.NewSQL(db), cfg.OrganizerKeySalt)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(svc)
	gameHandler := handlers.NewGameHandler(svc)
	stateHandler := handlers.NewStateHandler(svc)
	chatHandler := handlers.NewChatHandler(svc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("POST /sessions/import", middleware.WithLogging(sessionHandler.ImportSession))
	mux.HandleFunc("POST /sessions/{id}/join", middleware.WithLogging(sessionHandler.JoinSession))
	mux.HandleFunc("GET /sessions/{id}/export/state", middleware.WithLogging(sessionHandler.ExportState))
	mux.HandleFunc("GET /sessions/{id}/export/results", middleware.WithLogging(sessionHandler.ExportResults))

	// Game control (organizer operations)
	mux.HandleFunc("POST /sessions/{id}/start", middleware.WithLogging(gameHandler.StartGame))
	mux.HandleFunc("POST /sessions/{id}/reveal", middleware.WithLogging(gameHandler.RevealVotes))
	mux.HandleFunc("POST /sessions/{id}/resume", middleware.WithLogging(gameHandler.ResumeGame))
	mux.HandleFunc("POST /sessions/{id}/revote", middleware.WithLogging(gameHandler.Revote))
	mux.HandleFunc("POST /sessions/{id}/next", middleware.WithLogging(gameHandler.NextItem))

	// Player operations
	mux.HandleFunc("POST /sessions/{id}/vote", middleware.WithLogging(gameHandler.CastVote))

	// Polling reads
	mux.HandleFunc("GET /sessions/{id}/state", middleware.WithLogging(stateHandler.GetState))
	mux.HandleFunc("GET /sessions/{id}/participants", middleware.WithLogging(stateHandler.GetParticipants))

	// Chat
	mux.HandleFunc("GET /sessions/{id}/chat", middleware.WithLogging(chatHandler.GetChat))
	mux.HandleFunc("POST /sessions/{id}/chat", middleware.WithLogging(chatHandler.PostChat))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("planning-poker API v1"))
	})

	return mux
}
