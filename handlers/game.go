// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/planning-poker/middleware"
	"github.com/danielhkuo/planning-poker/models"
	"github.com/danielhkuo/planning-poker/session"
)

type GameHandler struct {
	svc *session.Service
}

func NewGameHandler(svc *session.Service) *GameHandler {
	return &GameHandler{svc: svc}
}

// StartGame handles POST /sessions/{id}/start
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	err := h.svc.Start(r.Context(), sessionID, r.Header.Get(HeaderOrganizerKey))
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("game started", "session_id", sessionID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// CastVote handles POST /sessions/{id}/vote
func (h *GameHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	name := r.Header.Get(HeaderPlayerName)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Player-Name header required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.CastVote(r.Context(), sessionID, name, req.Vote); err != nil {
		serviceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// RevealVotes handles POST /sessions/{id}/reveal
func (h *GameHandler) RevealVotes(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	err := h.svc.Reveal(r.Context(), sessionID, r.Header.Get(HeaderOrganizerKey))
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("votes revealed", "session_id", sessionID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// ResumeGame handles POST /sessions/{id}/resume
// Resuming a session that is not paused answers "ignored" rather than an
// error so clients can fire it without checking first.
func (h *GameHandler) ResumeGame(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	resumed, err := h.svc.Resume(r.Context(), sessionID, r.Header.Get(HeaderOrganizerKey))
	if err != nil {
		serviceError(w, err)
		return
	}

	if !resumed {
		middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "ignored"})
		return
	}

	slog.Info("game resumed", "session_id", sessionID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Revote handles POST /sessions/{id}/revote
func (h *GameHandler) Revote(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	err := h.svc.Revote(r.Context(), sessionID, r.Header.Get(HeaderOrganizerKey))
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("revote opened", "session_id", sessionID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// NextItem handles POST /sessions/{id}/next
// A duplicate submission (the session already advanced past the index the
// caller saw) answers "ignored"; history is never appended twice.
func (h *GameHandler) NextItem(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	// The body is optional: no body (or no result field) means "let the
	// server compute a fallback result".
	var req models.NextItemRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	advanced, err := h.svc.NextItem(r.Context(), sessionID, r.Header.Get(HeaderOrganizerKey), req.Result)
	if err != nil {
		serviceError(w, err)
		return
	}

	if !advanced {
		middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "ignored"})
		return
	}

	slog.Info("advanced to next item", "session_id", sessionID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}
