// Package ranking defines the ordering rules used to rank ongoing matches.
//
// Comparators follow the cmp.Compare convention: negative when a sorts
// before b, zero when equal, positive otherwise. Base comparators are
// ascending; Reverse flips any of them.
package ranking

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/fszuberski/scoreboard/internal/domain/model"
)

// Comparator orders two matches.
type Comparator func(a, b model.Match) int

// ByTotalScore orders by total score, ascending.
func ByTotalScore(a, b model.Match) int {
	return cmp.Compare(a.TotalScore(), b.TotalScore())
}

// ByStartTime orders by start time, earlier first.
func ByStartTime(a, b model.Match) int {
	return a.StartTime().Compare(b.StartTime())
}

// ByID orders by the raw bytes of the match id.
func ByID(a, b model.Match) int {
	ai, bi := a.ID(), b.ID()
	return bytes.Compare(ai[:], bi[:])
}

// Chain returns a comparator that consults each comparator in turn until
// one of them tells a and b apart.
func Chain(cs ...Comparator) Comparator {
	return func(a, b model.Match) int {
		for _, c := range cs {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// Reverse flips the order of c.
func Reverse(c Comparator) Comparator {
	return func(a, b model.Match) int { return c(b, a) }
}

// TotalScoreAndStartTime orders by total score, then by start time, both
// ascending.
var TotalScoreAndStartTime = Chain(ByTotalScore, ByStartTime)

// Summary is the scoreboard order: highest total first, the most recently
// started match first among equal totals. Matches equal on both keys fall
// back to id order so repeated calls on unchanged data agree.
var Summary = Chain(Reverse(TotalScoreAndStartTime), ByID)

// Sort returns a sorted copy of matches; the input is left untouched.
func Sort(matches []model.Match, c Comparator) []model.Match {
	out := slices.Clone(matches)
	slices.SortStableFunc(out, c)
	if out == nil {
		out = []model.Match{}
	}
	return out
}
