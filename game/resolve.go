// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/planning-poker/models"
)

// Resolve applies the configured decision mode to one round of raw votes.
// A nil entry means that participant has not voted; sentinel votes are
// excluded from numeric aggregation.
//
// Round 1 of every item is always unanimity-seeking: the configured mode
// only takes effect from the second round (after a revote) onward.
func Resolve(mode string, roundNumber int, votes []*string) models.Resolution {
	if mode == models.ModeStrict || roundNumber == 1 {
		return resolveStrict(votes)
	}

	numeric := numericVotes(votes)
	if len(numeric) == 0 {
		return models.Resolution{
			Status:      models.ResolutionNoNumericVotes,
			Explanation: "no numeric votes to aggregate",
		}
	}

	switch mode {
	case models.ModeAverage:
		return snapResolution(mean(numeric), "mean")
	case models.ModeMedian:
		return snapResolution(median(numeric), "median")
	case models.ModeAbsoluteMajority:
		return resolveAbsoluteMajority(numeric, len(votes))
	case models.ModeRelativeMajority:
		return resolveRelativeMajority(numeric)
	default:
		return models.Resolution{
			Status:      models.ResolutionUnresolved,
			Explanation: fmt.Sprintf("unknown decision mode %q", mode),
		}
	}
}

// resolveStrict resolves only when every participant holds the same numeric,
// non-sentinel vote. A missing vote, a sentinel, or any disagreement leaves
// the round unresolved.
func resolveStrict(votes []*string) models.Resolution {
	if len(votes) == 0 {
		return models.Resolution{Status: models.ResolutionUnresolved, Explanation: "no participants"}
	}

	var common float64
	for i, v := range votes {
		if v == nil {
			return models.Resolution{Status: models.ResolutionUnresolved, Explanation: "not everyone has voted"}
		}
		n, ok := ParseNumeric(*v)
		if !ok {
			return models.Resolution{Status: models.ResolutionUnresolved, Explanation: "sentinel vote blocks unanimity"}
		}
		if i == 0 {
			common = n
			continue
		}
		if n != common {
			return models.Resolution{Status: models.ResolutionUnresolved, Explanation: "votes disagree"}
		}
	}

	val := FormatValue(common)
	return models.Resolution{
		Status:      models.ResolutionResolved,
		Value:       &val,
		Explanation: fmt.Sprintf("all %d votes agree on %s", len(votes), val),
	}
}

func resolveAbsoluteMajority(numeric []float64, totalParticipants int) models.Resolution {
	counts := voteCounts(numeric)
	// Strict majority is measured against every participant, not just the
	// numeric voters.
	for _, c := range counts {
		if c.count*2 > totalParticipants {
			val := FormatValue(c.value)
			return models.Resolution{
				Status:      models.ResolutionResolved,
				Value:       &val,
				Explanation: fmt.Sprintf("%d of %d participants voted %s", c.count, totalParticipants, val),
			}
		}
	}
	return models.Resolution{
		Status:      models.ResolutionUnresolved,
		Explanation: "no value holds an absolute majority",
	}
}

func resolveRelativeMajority(numeric []float64) models.Resolution {
	counts := voteCounts(numeric)
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].value < counts[j].value
	})

	if len(counts) > 1 && counts[0].count == counts[1].count {
		return models.Resolution{
			Status:      models.ResolutionUnresolved,
			Explanation: "tie for the leading value",
		}
	}

	val := FormatValue(counts[0].value)
	return models.Resolution{
		Status:      models.ResolutionResolved,
		Value:       &val,
		Explanation: fmt.Sprintf("%s leads with %d votes", val, counts[0].count),
	}
}

func snapResolution(aggregate float64, label string) models.Resolution {
	snapped := NearestDeckValue(aggregate)
	val := FormatValue(snapped)
	return models.Resolution{
		Status:      models.ResolutionResolved,
		Value:       &val,
		Explanation: fmt.Sprintf("%s %s snapped to deck value %s", label, FormatValue(aggregate), val),
	}
}

// numericVotes extracts the numeric values from raw votes, dropping nil
// entries and sentinels.
func numericVotes(votes []*string) []float64 {
	var out []float64
	for _, v := range votes {
		if v == nil {
			continue
		}
		if n, ok := ParseNumeric(*v); ok {
			out = append(out, n)
		}
	}
	return out
}

type valueCount struct {
	value float64
	count int
}

func voteCounts(numeric []float64) []valueCount {
	byValue := make(map[float64]int)
	for _, n := range numeric {
		byValue[n]++
	}
	counts := make([]valueCount, 0, len(byValue))
	for v, c := range byValue {
		counts = append(counts, valueCount{value: v, count: c})
	}
	return counts
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median computes the standard even/odd-count median over a copy of values.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
