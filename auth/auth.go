// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidOrganizerKey = errors.New("invalid organizer key")

// sessionCodeAlphabet is the character set for session codes: easy to read
// out loud and to type on a phone.
const sessionCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SessionCodeLength is the length of a session code.
const SessionCodeLength = 6

// GenerateSessionCode creates a random 6-character session code (A-Z, 0-9).
// Collisions are possible at this length; callers retry against the store.
func GenerateSessionCode() (string, error) {
	b := make([]byte, SessionCodeLength)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session code: %w", err)
	}
	for i := range b {
		b[i] = sessionCodeAlphabet[int(b[i])%len(sessionCodeAlphabet)]
	}
	return string(b), nil
}

// GenerateOrganizerKey creates an HMAC-based organizer key for a session.
// This is deterministic and verifiable, so it never needs to be stored.
func GenerateOrganizerKey(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOrganizerKey checks if the provided key grants organizer rights
// over the session.
func ValidateOrganizerKey(sessionID, organizerKey, salt string) error {
	expected := GenerateOrganizerKey(sessionID, salt)
	if !hmac.Equal([]byte(organizerKey), []byte(expected)) {
		return ErrInvalidOrganizerKey
	}
	return nil
}
