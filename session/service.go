// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/planning-poker/auth"
	"github.com/danielhkuo/planning-poker/models"
	"github.com/danielhkuo/planning-poker/store"
)

const (
	defaultTimePerItemMinutes = 5
	codeGenerationAttempts    = 50
)

// Service owns every valid transition of a session's lifecycle. It is the
// single authority on game rules; handlers only translate HTTP to and from
// these methods.
type Service struct {
	store            store.Store
	organizerKeySalt string
	now              func() time.Time
}

// NewService wires the service to its store. The organizer key salt must
// match across restarts or previously issued keys stop validating.
func NewService(st store.Store, organizerKeySalt string) *Service {
	return &Service{
		store:            st,
		organizerKeySalt: organizerKeySalt,
		now:              time.Now,
	}
}

// Create starts a new session in the waiting state. When req.Snapshot is
// set, backlog, history, mode and participants are seeded from the exported
// snapshot; the caller always becomes the organizer and is always added as a
// participant.
func (s *Service) Create(ctx context.Context, req models.CreateSessionRequest) (*models.CreateSessionResponse, error) {
	organizer := strings.TrimSpace(req.Organizer)
	if organizer == "" {
		return nil, fmt.Errorf("%w: organizer name is required", ErrInvalidInput)
	}

	mode := req.DecisionMode
	if mode == "" {
		mode = models.ModeStrict
	}
	if !models.ValidDecisionMode(mode) {
		return nil, fmt.Errorf("%w: unknown decision mode %q", ErrInvalidInput, mode)
	}

	timePerItem := req.TimePerItemMinutes
	if timePerItem < 1 {
		timePerItem = defaultTimePerItemMinutes
	}

	sess := &models.Session{
		Organizer:          organizer,
		Status:             models.StatusWaiting,
		DecisionMode:       mode,
		Backlog:            req.Backlog,
		CurrentIndex:       0,
		RoundNumber:        1,
		TimePerItemMinutes: timePerItem,
		History:            []models.HistoryEntry{},
		CreatedAt:          s.now().Unix(),
	}

	if snap := req.Snapshot; snap != nil {
		if len(snap.Backlog) > 0 {
			sess.Backlog = snap.Backlog
		}
		sess.CurrentIndex = snap.CurrentIndex
		if snap.History != nil {
			sess.History = snap.History
		}
		if models.ValidDecisionMode(snap.DecisionMode) {
			sess.DecisionMode = snap.DecisionMode
		}
		if snap.RoundNumber >= 1 {
			sess.RoundNumber = snap.RoundNumber
		}
		if snap.TimePerItemMinutes >= 1 {
			sess.TimePerItemMinutes = snap.TimePerItemMinutes
		}
	}

	if len(sess.Backlog) == 0 {
		return nil, fmt.Errorf("%w: backlog must not be empty", ErrInvalidInput)
	}

	id, err := s.uniqueSessionCode(ctx)
	if err != nil {
		return nil, err
	}
	sess.ID = id

	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	// Recreate imported participants before seating the organizer, so an
	// organizer present in the snapshot keeps their imported record.
	if req.Snapshot != nil {
		for _, p := range req.Snapshot.Participants {
			imported := models.Participant{
				Name:       p.Name,
				AvatarSeed: normalizeAvatarSeed(p.AvatarSeed),
				Vote:       p.Vote,
				HasVoted:   p.HasVoted,
			}
			if imported.Name == "" {
				continue
			}
			if err := s.store.AddParticipant(ctx, id, &imported); err != nil {
				return nil, err
			}
		}
	}

	if err := s.store.AddParticipant(ctx, id, &models.Participant{
		Name:       organizer,
		AvatarSeed: normalizeAvatarSeed(req.AvatarSeed),
	}); err != nil {
		return nil, err
	}

	return &models.CreateSessionResponse{
		SessionID:    id,
		OrganizerKey: auth.GenerateOrganizerKey(id, s.organizerKeySalt),
	}, nil
}

// Join adds a participant to an existing session. Joining again under the
// same display name is an idempotent no-op.
func (s *Service) Join(ctx context.Context, code, name, avatarSeed string) (*models.JoinSessionResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: session code and display name are required", ErrInvalidInput)
	}

	exists, err := s.store.SessionExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	if err := s.store.AddParticipant(ctx, code, &models.Participant{
		Name:       name,
		AvatarSeed: normalizeAvatarSeed(avatarSeed),
	}); err != nil {
		return nil, err
	}

	return &models.JoinSessionResponse{SessionID: code, Name: name}, nil
}

// Import creates a new session from an exported snapshot. Completed items
// are counted from the carried-over history: a fully played backlog yields a
// finished session frozen on its last item, anything else resumes waiting at
// the first unplayed item. Only the organizer is recreated as a participant.
func (s *Service) Import(ctx context.Context, snap *models.SessionExport) (*models.CreateSessionResponse, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: empty import payload", ErrInvalidInput)
	}

	organizer := strings.TrimSpace(snap.Organizer)
	if organizer == "" {
		organizer = "Organizer"
	}

	completed := len(snap.History)
	status := models.StatusWaiting
	index := completed
	if completed >= len(snap.Backlog) && len(snap.Backlog) > 0 {
		status = models.StatusFinished
		index = len(snap.Backlog) - 1
	}

	mode := snap.DecisionMode
	if !models.ValidDecisionMode(mode) {
		mode = models.ModeStrict
	}
	round := snap.RoundNumber
	if round < 1 {
		round = 1
	}
	timePerItem := snap.TimePerItemMinutes
	if timePerItem < 1 {
		timePerItem = defaultTimePerItemMinutes
	}
	history := snap.History
	if history == nil {
		history = []models.HistoryEntry{}
	}

	id, err := s.uniqueSessionCode(ctx)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		ID:                 id,
		Organizer:          organizer,
		Status:             status,
		DecisionMode:       mode,
		Backlog:            snap.Backlog,
		CurrentIndex:       index,
		RoundNumber:        round,
		TimePerItemMinutes: timePerItem,
		History:            history,
		CreatedAt:          s.now().Unix(),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	// Carry the organizer's imported avatar over; everyone else rejoins on
	// their own.
	avatarSeed := models.DefaultAvatarSeed
	for _, p := range snap.Participants {
		if p.Name == organizer {
			avatarSeed = normalizeAvatarSeed(p.AvatarSeed)
			break
		}
	}
	if err := s.store.AddParticipant(ctx, id, &models.Participant{
		Name:       organizer,
		AvatarSeed: avatarSeed,
	}); err != nil {
		return nil, err
	}

	return &models.CreateSessionResponse{
		SessionID:    id,
		OrganizerKey: auth.GenerateOrganizerKey(id, s.organizerKeySalt),
	}, nil
}

// ExportState produces the full-state snapshot, participants included.
func (s *Service) ExportState(ctx context.Context, id string) (*models.SessionExport, error) {
	export, err := s.export(ctx, id)
	if err != nil {
		return nil, err
	}
	participants, err := s.store.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	export.Participants = participants
	return export, nil
}

// ExportResults produces the results-only snapshot: history without the
// participant roster.
func (s *Service) ExportResults(ctx context.Context, id string) (*models.SessionExport, error) {
	return s.export(ctx, id)
}

func (s *Service) export(ctx context.Context, id string) (*models.SessionExport, error) {
	sess, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.SessionExport{
		SchemaVersion:      models.ExportSchemaVersion,
		SessionID:          sess.ID,
		Organizer:          sess.Organizer,
		Status:             sess.Status,
		DecisionMode:       sess.DecisionMode,
		TimePerItemMinutes: sess.TimePerItemMinutes,
		Backlog:            sess.Backlog,
		CurrentIndex:       sess.CurrentIndex,
		RoundNumber:        sess.RoundNumber,
		History:            sess.History,
	}, nil
}

// Delete removes a session and everything scoped to it.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteSession(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) uniqueSessionCode(ctx context.Context) (string, error) {
	for range codeGenerationAttempts {
		code, err := auth.GenerateSessionCode()
		if err != nil {
			return "", err
		}
		exists, err := s.store.SessionExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not find a free session code")
}

func (s *Service) loadSession(ctx context.Context, id string) (*models.Session, error) {
	sess, err := s.store.GetSession(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) requireOrganizer(sessionID, organizerKey string) error {
	if err := auth.ValidateOrganizerKey(sessionID, organizerKey, s.organizerKeySalt); err != nil {
		return ErrNotAuthorized
	}
	return nil
}

func normalizeAvatarSeed(seed string) string {
	if models.ValidAvatarSeed(seed) {
		return seed
	}
	return models.DefaultAvatarSeed
}
