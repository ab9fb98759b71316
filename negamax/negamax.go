package negamax

import (
	"math"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
)

// WinScore is the value of completing five at the root. Wins found deeper
// in the tree are worth one point less per ply, so faster wins rank higher.
func (s *Solver) WinScore() float64 {
	return s.settings.Table.Five
}

// evaluate is the static board score from color's point of view.
func (s *Solver) evaluate(b *board.Board, color board.Color) float64 {
	v := s.scorer.BoardScore(b)
	if color != s.engine {
		return -v
	}
	return v
}

func (s *Solver) negamax(b *board.Board, depth int, α, β float64, color board.Color, pv *PVLine) float64 {
	if depth == 0 {
		return s.evaluate(b, color)
	}
	cands := s.gen.Generate(b)
	if len(cands) == 0 {
		return 0
	}
	movegen.Order(cands, b, color, s.scorer)
	cands = movegen.Truncate(cands, s.breadth(depth))

	childPV := PVLine{}
	bestValue := math.Inf(-1)
	for _, cand := range cands {
		m := move.NewMove(cand.X, cand.Y, color)
		b.Set(cand.X, cand.Y, color)
		s.nodes.Add(1)
		if b.IsFive(cand.X, cand.Y) {
			b.Remove(cand.X, cand.Y)
			score := s.WinScore() - float64(s.rootDepth-depth)
			pv.Update(m, PVLine{}, score)
			return score
		}
		score := -s.negamax(b, depth-1, -β, -α, color.Opponent(), &childPV)
		b.Remove(cand.X, cand.Y)

		if score > bestValue {
			bestValue = score
			pv.Update(m, childPV, score)
		}
		α = math.Max(α, bestValue)
		if α >= β {
			break // beta cut-off
		}
		childPV.Clear()
	}
	return bestValue
}
