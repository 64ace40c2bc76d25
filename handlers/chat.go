// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/planning-poker/middleware"
	"github.com/danielhkuo/planning-poker/models"
	"github.com/danielhkuo/planning-poker/session"
)

type ChatHandler struct {
	svc *session.Service
}

func NewChatHandler(svc *session.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// GetChat handles GET /sessions/{id}/chat
// Returns the most recent messages in chronological order.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	msgs, err := h.svc.ListChat(r.Context(), sessionID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChatListResponse{Messages: msgs})
}

// PostChat handles POST /sessions/{id}/chat
// The sender is the X-Player-Name header; anonymous posts are rejected.
func (h *ChatHandler) PostChat(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	sender := r.Header.Get(HeaderPlayerName)
	if sender == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Player-Name header required")
		return
	}

	var req models.PostChatRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.PostChat(r.Context(), sessionID, sender, req.Text); err != nil {
		serviceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.StatusResponse{Status: "ok"})
}
