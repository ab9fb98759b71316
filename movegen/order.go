package movegen

import (
	"sort"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/equity"
)

// DefenseDiscount scales the value of taking a point away from the
// opponent relative to taking it for oneself.
const DefenseDiscount = 0.9

// Order scores each candidate as the better of attacking there with the
// mover's color or defending it against the opponent, then sorts the
// candidates best first. Ties keep their generation order.
func Order(cands []Candidate, b *board.Board, mover board.Color, s *equity.Scorer) {
	opp := mover.Opponent()
	for i := range cands {
		c := &cands[i]
		attack := s.PointScore(b, c.X, c.Y, mover)
		defend := s.PointScore(b, c.X, c.Y, opp)
		c.Score = max(attack, defend*DefenseDiscount)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
}

// Truncate keeps at most k candidates.
func Truncate(cands []Candidate, k int) []Candidate {
	if k >= 0 && len(cands) > k {
		return cands[:k]
	}
	return cands
}
