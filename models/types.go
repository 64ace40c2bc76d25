// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Session status constants
const (
	StatusWaiting  = "waiting"
	StatusStarted  = "started"
	StatusPaused   = "paused"
	StatusFinished = "finished"
)

// Decision mode constants
const (
	ModeStrict           = "strict"
	ModeAverage          = "average"
	ModeMedian           = "median"
	ModeAbsoluteMajority = "absoluteMajority"
	ModeRelativeMajority = "relativeMajority"
)

// Sentinel vote values. These are the wire values submitted by clients and
// are excluded from all numeric aggregation.
const (
	VoteUnknown = "?"
	VoteBreak   = "☕"
)

// Resolution status constants
const (
	ResolutionResolved       = "resolved"
	ResolutionUnresolved     = "unresolved"
	ResolutionNoNumericVotes = "noNumericVotes"
)

// ExportSchemaVersion is the schemaVersion written into session exports.
const ExportSchemaVersion = 1

// AvatarSeeds are the cosmetic avatar identifiers participants pick from.
var AvatarSeeds = []string{
	"astronaut", "ninja", "pirate", "wizard",
	"gamer", "robot", "detective", "viking",
}

// DefaultAvatarSeed is used when a client supplies no (or an unknown) seed.
const DefaultAvatarSeed = "astronaut"

// ValidDecisionMode reports whether m is one of the supported decision modes.
func ValidDecisionMode(m string) bool {
	switch m {
	case ModeStrict, ModeAverage, ModeMedian, ModeAbsoluteMajority, ModeRelativeMajority:
		return true
	}
	return false
}

// ValidAvatarSeed reports whether seed is a known avatar seed.
func ValidAvatarSeed(seed string) bool {
	for _, s := range AvatarSeeds {
		if s == seed {
			return true
		}
	}
	return false
}

// Request types

type CreateSessionRequest struct {
	Organizer          string         `json:"organizer"`
	Backlog            []string       `json:"backlog"`
	AvatarSeed         string         `json:"avatarSeed"`
	DecisionMode       string         `json:"decisionMode"`
	TimePerItemMinutes int            `json:"timePerItemMinutes"`
	Snapshot           *SessionExport `json:"snapshot,omitempty"`
}

type JoinSessionRequest struct {
	Name       string `json:"name"`
	AvatarSeed string `json:"avatarSeed"`
}

type CastVoteRequest struct {
	Vote string `json:"vote"`
}

type NextItemRequest struct {
	Result *string `json:"result"`
}

type PostChatRequest struct {
	Text string `json:"text"`
}

// Response types

type CreateSessionResponse struct {
	SessionID    string `json:"sessionId"`
	OrganizerKey string `json:"organizerKey"`
}

type JoinSessionResponse struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

// StatusResponse is the generic acknowledgement for transitions: "ok" when
// the transition applied, "ignored" when it was a semantic no-op.
type StatusResponse struct {
	Status string `json:"status"`
}

type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
	Status       string        `json:"status"`
}

// GameStateResponse is the polling read surface: the full live state of a
// session as seen by one viewer (votes already visibility-filtered).
type GameStateResponse struct {
	Participants       []Participant  `json:"participants"`
	AllVoted           bool           `json:"allVoted"`
	AllBreak           bool           `json:"allBreak"`
	Unanimous          bool           `json:"unanimous"`
	UnanimousValue     *string        `json:"unanimousValue"`
	Reveal             bool           `json:"reveal"`
	CurrentItem        string         `json:"currentItem"`
	History            []HistoryEntry `json:"history"`
	DecisionMode       string         `json:"decisionMode"`
	RoundNumber        int            `json:"roundNumber"`
	TimePerItemMinutes int            `json:"timePerItemMinutes"`
	TimerStartedAt     *int64         `json:"timerStartedAt"`
	Status             string         `json:"status"`
	// Resolution carries the engine's verdict for the current round once
	// votes are revealed. Clients render it; they never recompute it.
	Resolution *Resolution `json:"resolution,omitempty"`
}

// Resolution is the resolution engine's outcome for one round of votes.
type Resolution struct {
	Status      string  `json:"status"`
	Value       *string `json:"value"`
	Explanation string  `json:"explanation"`
}

type ChatListResponse struct {
	Messages []ChatMessage `json:"messages"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

// Session is one complete estimation game. Timestamps are epoch seconds;
// TimerStartedAt is nil whenever no countdown is running (paused/finished)
// and PauseRemaining banks the seconds left on the countdown while paused.
type Session struct {
	ID                 string         `json:"sessionId"`
	Organizer          string         `json:"organizer"`
	Status             string         `json:"status"`
	DecisionMode       string         `json:"decisionMode"`
	Backlog            []string       `json:"backlog"`
	CurrentIndex       int            `json:"currentIndex"`
	RoundNumber        int            `json:"roundNumber"`
	Reveal             bool           `json:"reveal"`
	FinalResult        *string        `json:"finalResult"`
	TimePerItemMinutes int            `json:"timePerItemMinutes"`
	TimerStartedAt     *int64         `json:"timerStartedAt"`
	PauseRemaining     *int64         `json:"-"`
	History            []HistoryEntry `json:"history"`
	CreatedAt          int64          `json:"-"`
}

// Participant is one seat in a session, keyed by display name (unique within
// a session). Vote is nil until cast; HasVoted is tracked separately so a
// masked vote still reads as "has voted".
type Participant struct {
	ID         string  `json:"-"`
	Name       string  `json:"name"`
	AvatarSeed string  `json:"avatarSeed"`
	Vote       *string `json:"vote"`
	HasVoted   bool    `json:"hasVoted"`
}

// HistoryVote is one participant's vote as snapshotted into a history entry.
type HistoryVote struct {
	Name       string  `json:"name"`
	AvatarSeed string  `json:"avatarSeed"`
	Vote       *string `json:"vote"`
}

// HistoryEntry is the immutable record appended when voting on an item
// concludes.
type HistoryEntry struct {
	Item   string        `json:"item"`
	Result *string       `json:"result"`
	Votes  []HistoryVote `json:"votes"`
}

type ChatMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// SessionExport is the snapshot shape used by both export endpoints and by
// import. Participants is present only in full-state exports.
type SessionExport struct {
	SchemaVersion      int            `json:"schemaVersion"`
	SessionID          string         `json:"sessionId"`
	Organizer          string         `json:"organizer"`
	Status             string         `json:"status"`
	DecisionMode       string         `json:"decisionMode"`
	TimePerItemMinutes int            `json:"timePerItemMinutes"`
	Backlog            []string       `json:"backlog"`
	CurrentIndex       int            `json:"currentIndex"`
	RoundNumber        int            `json:"roundNumber"`
	History            []HistoryEntry `json:"history"`
	Participants       []Participant  `json:"participants,omitempty"`
}
