// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/planning-poker/middleware"
	"github.com/danielhkuo/planning-poker/session"
)

type StateHandler struct {
	svc *session.Service
}

func NewStateHandler(svc *session.Service) *StateHandler {
	return &StateHandler{svc: svc}
}

// GetState handles GET /sessions/{id}/state
// The polling read surface. Votes are filtered for the viewer named in
// X-Player-Name; an absent header is a spectator who sees only what a
// revealed session shows. Carries the documented pause-on-all-break side
// effect (see session.Service.PollState).
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	state, err := h.svc.PollState(r.Context(), sessionID, r.Header.Get(HeaderPlayerName))
	if err != nil {
		serviceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, state)
}

// GetParticipants handles GET /sessions/{id}/participants
// The waiting-room poll: roster plus session status.
func (h *StateHandler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	resp, err := h.svc.Participants(r.Context(), sessionID, r.Header.Get(HeaderPlayerName))
	if err != nil {
		serviceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
