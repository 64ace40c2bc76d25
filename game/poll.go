// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import "github.com/danielhkuo/planning-poker/models"

// AllVoted reports whether every participant has cast a vote.
func AllVoted(votes []*string) bool {
	for _, v := range votes {
		if v == nil {
			return false
		}
	}
	return len(votes) > 0
}

// AllBreak reports whether every participant is holding the coffee-break
// card. An empty round is never a break.
func AllBreak(votes []*string) bool {
	if len(votes) == 0 {
		return false
	}
	for _, v := range votes {
		if v == nil || *v != models.VoteBreak {
			return false
		}
	}
	return true
}

// Unanimity checks for agreement over the non-sentinel votes cast so far.
// Sentinels and missing votes are ignored; at least one numeric vote is
// required for agreement to exist.
func Unanimity(votes []*string) (bool, *string) {
	var first *string
	for _, v := range votes {
		if v == nil || *v == models.VoteUnknown || *v == models.VoteBreak {
			continue
		}
		if first == nil {
			first = v
			continue
		}
		if *v != *first {
			return false, nil
		}
	}
	if first == nil {
		return false, nil
	}
	val := *first
	return true, &val
}

// FallbackResult computes the best-effort result recorded when the organizer
// advances to the next item without supplying one: the mean of the numeric,
// non-sentinel votes snapped to the deck. Nil when only sentinels (or
// nothing) was cast.
func FallbackResult(votes []*string) *string {
	numeric := numericVotes(votes)
	if len(numeric) == 0 {
		return nil
	}
	val := FormatValue(NearestDeckValue(mean(numeric)))
	return &val
}
