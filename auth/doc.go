// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session codes and organizer key generation.

# Session Codes

Session codes are the short join codes participants type in:

	code, err := auth.GenerateSessionCode()  // e.g. "K4T9ZQ"

Six characters from A-Z0-9. At this length collisions can happen, so
creation retries until the store reports the code unused.

# Organizer Keys

Organizer keys use HMAC-SHA256 to create deterministic, verifiable keys:

	key := auth.GenerateOrganizerKey(sessionID, salt)
	err := auth.ValidateOrganizerKey(sessionID, key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same session id and salt always produce the same key. This allows
validation without storing the key in the database. The key is returned once
at session creation and required (X-Organizer-Key header) on every
organizer-only transition: start, reveal, revote, next item, resume.
*/
package auth
