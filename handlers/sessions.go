// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/planning-poker/middleware"
	"github.com/danielhkuo/planning-poker/models"
	"github.com/danielhkuo/planning-poker/session"
)

type SessionHandler struct {
	svc *session.Service
}

func NewSessionHandler(svc *session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.Create(r.Context(), req)
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("session created", "session_id", resp.SessionID, "organizer", req.Organizer)

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// JoinSession handles POST /sessions/{id}/join
func (h *SessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req models.JoinSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.Join(r.Context(), sessionID, req.Name, req.AvatarSeed)
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("participant joined", "session_id", resp.SessionID, "name", resp.Name)

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// ImportSession handles POST /sessions/import
// Creates a brand-new session from a previously exported snapshot.
func (h *SessionHandler) ImportSession(w http.ResponseWriter, r *http.Request) {
	var snap models.SessionExport
	if err := middleware.ParseJSONBody(r, &snap); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.Import(r.Context(), &snap)
	if err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("session imported", "session_id", resp.SessionID, "carried_items", len(snap.History))

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// ExportState handles GET /sessions/{id}/export/state
// Full-state download, participants included.
func (h *SessionHandler) ExportState(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	export, err := h.svc.ExportState(r.Context(), sessionID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=poker_state_%s.json", sessionID))
	middleware.JSONResponse(w, http.StatusOK, export)
}

// ExportResults handles GET /sessions/{id}/export/results
// Results-only download: history without the participant roster.
func (h *SessionHandler) ExportResults(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	export, err := h.svc.ExportResults(r.Context(), sessionID)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=poker_results_%s.json", sessionID))
	middleware.JSONResponse(w, http.StatusOK, export)
}
