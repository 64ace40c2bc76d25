// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "errors"

// Failure taxonomy. Handlers map these to HTTP statuses; nothing below this
// layer retries — failures surface to the caller for a user-driven retry.
var (
	// ErrNotFound: the session (or participant) does not exist.
	ErrNotFound = errors.New("session not found")
	// ErrNotAuthorized: a non-organizer attempted an organizer-only
	// transition. Never conflated with ErrNotFound.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrAlreadyFinished: a round-progressing transition was attempted on a
	// finished session.
	ErrAlreadyFinished = errors.New("game already finished")
	// ErrInvalidInput: an empty required field or malformed payload.
	ErrInvalidInput = errors.New("invalid input")
)
