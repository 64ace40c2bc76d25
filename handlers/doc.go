// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Planning Poker API.

# Handler Types

Each handler is a struct holding the session service:

  - SessionHandler: session creation, join, import, export
  - GameHandler: start, vote, reveal, resume, revote, next-item
  - StateHandler: polling reads (game state, participant roster)
  - ChatHandler: chat read/post

# Identity

There are no accounts. A caller identifies with two request headers:

  - X-Player-Name: the display name chosen at join time. It selects which
    votes the state endpoint unmasks and names the sender of chat posts.
  - X-Organizer-Key: the HMAC key returned by POST /sessions. Lifecycle
    endpoints (start, reveal, resume, revote, next) require it.

# Error Mapping

Handlers translate the session service's error taxonomy onto HTTP via
serviceError:

  - ErrNotFound        → 404
  - ErrNotAuthorized   → 401
  - ErrAlreadyFinished → 409
  - ErrInvalidInput    → 400
  - anything else      → 500 (logged)

Duplicate lifecycle requests (resuming a running session, advancing an
already-advanced item) are not errors: they answer 200 with
{"status": "ignored"} so polling clients can retry freely.

# Response Format

All responses are JSON, written through middleware.JSONResponse and
middleware.ErrorResponse. Export endpoints additionally set a
Content-Disposition header so browsers download the snapshot as a file.
*/
package handlers
