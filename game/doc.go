// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package game holds the pure rules of a planning-poker round: the card deck,
the resolution engine, the vote visibility filter, and the per-round
aggregate checks the polling endpoint reports.

Everything here is a pure function over in-memory values. No storage, no
clocks, no I/O — the session service owns all of that.

# The Deck

	Deck = [1 2 3 5 8 13]

plus two sentinel cards, "?" (unknown) and "☕" (coffee break). Sentinels are
valid votes but never participate in numeric aggregation.

# Resolution

	res := game.Resolve(mode, roundNumber, votes)

Five decision modes: strict, average, median, absoluteMajority,
relativeMajority. Round 1 of every item is forced to strict regardless of
the configured mode — only rounds after a revote use the statistical modes.
Average and median snap their aggregate to the nearest deck value, preferring
the lower card on equidistant ties. The distinct noNumericVotes status
signals that only sentinels were cast under a non-strict mode.

# Visibility

	visible := game.VisibleVotes(participants, reveal, viewer, organizer)

is the single authority for hiding votes before reveal. It must be recomputed
per viewer on every read; results are never cached.
*/
package game
