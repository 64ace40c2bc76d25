// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session is the authoritative state machine for an estimation game.

# Lifecycle

	waiting → started → {paused ⇄ started} → finished

waiting and finished are hard boundaries: nothing transitions back into
waiting, and finished is terminal for every round-progressing operation.

# Transitions

All transitions live on Service and are backed by the injected store.Store:

  - Create / Import — new session (fresh, seeded, or resumed from a file)
  - Join            — add a seat; idempotent per display name
  - Start           — organizer; reset votes, round 1, countdown starts
  - CastVote        — participant; unseated callers are seated defensively
  - Reveal          — organizer; votes become visible, nothing else changes
  - PollState       — read with one side effect (see below)
  - Resume          — organizer; paused → started, countdown continues
  - Revote          — organizer; new round on the same item
  - NextItem        — organizer; history entry appended, advance or finish

# The pause side effect

PollState is the state read behind the clients' polling loop, and it is
also what detects the coffee break: when every participant holds ☕ the
session pauses and the countdown's remaining seconds are banked in
pauseRemaining. The transition is a guarded (compare-and-set) status update,
so concurrent pollers pause a session exactly once. Resume later rebuilds
timerStartedAt so the recomputed remaining time equals what was banked.

# Failures

Sentinel errors (ErrNotFound, ErrNotAuthorized, ErrAlreadyFinished,
ErrInvalidInput) cover everything callers can mishandle. Semantic no-ops —
resume on a session that is not paused, a duplicate next-item submission —
are not errors; those methods return an applied bool instead.

# Organizer rights

Organizer-only transitions take the organizer key issued at creation
(an HMAC over the session id, see package auth). A bad key is always
ErrNotAuthorized, never ErrNotFound.
*/
package session
