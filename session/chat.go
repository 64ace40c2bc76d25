// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielhkuo/planning-poker/models"
)

// chatReadLimit caps chat reads at the most recent messages; storage itself
// is unbounded.
const chatReadLimit = 200

// PostChat appends a message to the session's chat log.
func (s *Service) PostChat(ctx context.Context, id, sender, text string) error {
	if sender == "" {
		return ErrNotAuthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: message text is required", ErrInvalidInput)
	}

	exists, err := s.store.SessionExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	return s.store.AddChatMessage(ctx, id, &models.ChatMessage{
		Sender:    sender,
		Text:      text,
		Timestamp: s.now().Unix(),
	})
}

// ListChat returns the most recent messages in ascending timestamp order.
func (s *Service) ListChat(ctx context.Context, id string) ([]models.ChatMessage, error) {
	exists, err := s.store.SessionExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	return s.store.ListChatMessages(ctx, id, chatReadLimit)
}
