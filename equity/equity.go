// Package equity turns line shapes into position values, either for a
// single point (move ordering, quick heuristics) or for the whole board
// (the static evaluation at the leaves of the search).
package equity

import (
	"github.com/samber/lo"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/shape"
)

// OpponentWeight scales the opponent's shapes in the board score, so that
// defense counts slightly more than offense.
const OpponentWeight = 1.1

// Scorer values positions for one side, its own color.
type Scorer struct {
	table shape.Table
	own   board.Color
}

func NewScorer(t shape.Table, own board.Color) *Scorer {
	return &Scorer{table: t, own: own}
}

func (s *Scorer) Own() board.Color {
	return s.own
}

func (s *Scorer) Table() shape.Table {
	return s.table
}

// PointScore is the value of a stone of color c placed at (x, y): the sum
// of its line scores over the four directions. A cell shared by two of the
// lines counts in both; this measures the point, not the board. The board
// is left as it was found.
func (s *Scorer) PointScore(b *board.Board, x, y int, c board.Color) float64 {
	prev := b.At(x, y)
	b.Set(x, y, c)
	score := lo.SumBy(board.LineDirections[:], func(d board.Direction) float64 {
		return shape.EvaluateLine(s.table, b, x, y, d, c)
	})
	b.Set(x, y, prev)
	return score
}

// Totals is the per-color sum of run scores over the board.
type Totals struct {
	Black float64
	White float64
}

// For returns the total for one color.
func (t Totals) For(c board.Color) float64 {
	if c == board.Black {
		return t.Black
	}
	return t.White
}

// Tally scores every maximal run on the board exactly once: each row,
// each column and both diagonal families are walked a single time.
func (s *Scorer) Tally(b *board.Board) Totals {
	var totals Totals
	n := b.Dim()
	walk := func(x, y int, d board.Direction) {
		for b.InBounds(x, y) {
			c := b.At(x, y)
			if c == board.Empty {
				x, y = x+d.DX, y+d.DY
				continue
			}
			open := 0
			if b.IsEmpty(x-d.DX, y-d.DY) {
				open++
			}
			count := 0
			for b.InBounds(x, y) && b.At(x, y) == c {
				count++
				x, y = x+d.DX, y+d.DY
			}
			if b.IsEmpty(x, y) {
				open++
			}
			v := s.table.Score(count, open)
			if c == board.Black {
				totals.Black += v
			} else {
				totals.White += v
			}
		}
	}
	for i := 0; i < n; i++ {
		walk(i, 0, board.LineDirections[1]) // row
		walk(0, i, board.LineDirections[0]) // column
		walk(i, 0, board.LineDirections[2]) // diagonal starting on the left edge
		walk(0, i, board.LineDirections[3]) // anti-diagonal starting on the top edge
		if i > 0 {
			walk(0, i, board.LineDirections[2])   // diagonal starting on the top edge
			walk(i, n-1, board.LineDirections[3]) // anti-diagonal starting on the right edge
		}
	}
	return totals
}

// BoardScore is own total minus the weighted opponent total.
func (s *Scorer) BoardScore(b *board.Board) float64 {
	t := s.Tally(b)
	return t.For(s.own) - t.For(s.own.Opponent())*OpponentWeight
}
