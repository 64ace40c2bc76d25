// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import "github.com/danielhkuo/planning-poker/models"

// VisibleVotes returns a copy of participants with votes masked according to
// the hide/reveal rules: a vote passes through when the session is revealed,
// when the viewer is the organizer, or when it is the viewer's own vote.
// HasVoted is always preserved so a hidden vote still reads as cast.
//
// This is the single authority for vote masking. Every read surface must go
// through it rather than filtering inline.
func VisibleVotes(participants []models.Participant, reveal bool, viewerName, organizerName string) []models.Participant {
	out := make([]models.Participant, len(participants))
	for i, p := range participants {
		out[i] = p
		if reveal || viewerName == organizerName || p.Name == viewerName {
			continue
		}
		out[i].Vote = nil
	}
	return out
}
