// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/planning-poker/middleware"
	"github.com/danielhkuo/planning-poker/session"
)

// Identity headers. The display name is the only identity this service
// knows; organizer rights ride on the key issued at session creation.
const (
	HeaderPlayerName   = "X-Player-Name"
	HeaderOrganizerKey = "X-Organizer-Key"
)

// serviceError maps the session service's failure taxonomy onto HTTP.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, session.ErrNotAuthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Organizer rights required")
	case errors.Is(err, session.ErrAlreadyFinished):
		middleware.ErrorResponse(w, http.StatusConflict, "Game already finished")
	case errors.Is(err, session.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("unexpected service error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
