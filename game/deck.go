// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"strconv"

	"github.com/danielhkuo/planning-poker/models"
)

// Deck is the fixed ordered set of allowed numeric card values. Statistical
// decision modes snap their aggregate onto this deck.
var Deck = []float64{1, 2, 3, 5, 8, 13}

// NearestDeckValue maps x onto the closest deck value. Ties in distance are
// broken toward the lower value: the scan is ascending and only a strictly
// smaller distance replaces the current candidate.
func NearestDeckValue(x float64) float64 {
	best := Deck[0]
	bestDist := abs(x - Deck[0])
	for _, v := range Deck[1:] {
		d := abs(x - v)
		if d < bestDist {
			best = v
			bestDist = d
		}
	}
	return best
}

// FormatValue renders a numeric vote value the way it appears on the wire
// (no trailing zeros: 5 not 5.000000).
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumeric parses a raw vote into its numeric value. Sentinel votes and
// anything unparseable report ok=false.
func ParseNumeric(vote string) (float64, bool) {
	if vote == models.VoteUnknown || vote == models.VoteBreak {
		return 0, false
	}
	v, err := strconv.ParseFloat(vote, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ValidVote reports whether v is a playable card: a deck value or one of the
// two sentinels.
func ValidVote(v string) bool {
	if v == models.VoteUnknown || v == models.VoteBreak {
		return true
	}
	n, ok := ParseNumeric(v)
	if !ok {
		return false
	}
	for _, d := range Deck {
		if n == d {
			return true
		}
	}
	return false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
