package simulation

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// verifyBoard checks that board holds exactly the played matches with their
// last accepted scores, in summary order.
func verifyBoard(matches []*played, board []boardEntry) error {
	if len(board) != len(matches) {
		return fmt.Errorf("board has %d matches, expected %d", len(board), len(matches))
	}

	byID := make(map[string]*played, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	for _, e := range board {
		m, ok := byID[e.ID]
		if !ok {
			return fmt.Errorf("unexpected match %s on board", e.ID)
		}
		if e.HomeScore != m.HomeScore || e.AwayScore != m.AwayScore {
			return fmt.Errorf("match %s: board shows %d - %d, played %d - %d",
				e.ID, e.HomeScore, e.AwayScore, m.HomeScore, m.AwayScore)
		}
		if e.TotalScore != e.HomeScore+e.AwayScore {
			return fmt.Errorf("match %s: total %d does not add up", e.ID, e.TotalScore)
		}
	}

	for i := 1; i < len(board); i++ {
		if !ordered(board[i-1], board[i]) {
			return fmt.Errorf("board out of order at position %d: %s before %s", i+1, board[i-1].ID, board[i].ID)
		}
	}
	return nil
}

// ordered reports whether a may precede b: higher total first, then the
// later start, then the lower id.
func ordered(a, b boardEntry) bool {
	if a.TotalScore != b.TotalScore {
		return a.TotalScore > b.TotalScore
	}
	if !a.StartTime.Equal(b.StartTime) {
		return a.StartTime.After(b.StartTime)
	}
	ida, erra := uuid.Parse(a.ID)
	idb, errb := uuid.Parse(b.ID)
	if erra != nil || errb != nil {
		return false
	}
	return bytes.Compare(ida[:], idb[:]) < 0
}
