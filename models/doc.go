// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: organizer, backlog, avatarSeed, decisionMode,
    timePerItemMinutes, optional snapshot (resume-from-file)
  - JoinSessionRequest: name, avatarSeed
  - CastVoteRequest: vote
  - NextItemRequest: optional result override
  - PostChatRequest: text

# Response Types

Types for JSON responses:

  - CreateSessionResponse: sessionId, organizerKey
  - JoinSessionResponse: sessionId, name
  - StatusResponse: "ok" or "ignored"
  - ParticipantsResponse: participants, status
  - GameStateResponse: the full polling read (visibility-filtered votes,
    allVoted/allBreak/unanimity flags, timer, history, resolution)
  - ChatListResponse: messages
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Session: one estimation game and its lifecycle state
  - Participant: one seat, keyed by display name
  - HistoryEntry / HistoryVote: immutable per-item vote records
  - ChatMessage: one chat line
  - Resolution: the resolution engine's verdict for a round
  - SessionExport: snapshot shape shared by export and import

# Constants

Status values:

	StatusWaiting  = "waiting"
	StatusStarted  = "started"
	StatusPaused   = "paused"
	StatusFinished = "finished"

Decision modes:

	ModeStrict           = "strict"
	ModeAverage          = "average"
	ModeMedian           = "median"
	ModeAbsoluteMajority = "absoluteMajority"
	ModeRelativeMajority = "relativeMajority"

Sentinel votes (never aggregated numerically):

	VoteUnknown = "?"
	VoteBreak   = "☕"

Resolution statuses:

	ResolutionResolved       = "resolved"
	ResolutionUnresolved     = "unresolved"
	ResolutionNoNumericVotes = "noNumericVotes"
*/
package models
