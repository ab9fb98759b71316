package negamax

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
)

// RankedMove is a root move with its full-window search value.
type RankedMove struct {
	Move      move.Move
	Score     float64
	Variation PVLine
}

// RankMoves searches each of the top n ordered root candidates (all of
// them when n is negative) with a full window, so every returned score is
// exact rather than a bound. It is the slower analysis counterpart to
// ChooseMove and skips the opening rule and the forced-move check.
func (s *Solver) RankMoves(b *board.Board, h move.History, c board.Color, n int) ([]RankedMove, error) {
	if err := s.checkArgs(b, c); err != nil {
		return nil, err
	}
	s.setEngine(c)
	s.nodes.Store(0)
	cands := s.gen.Generate(b)
	if len(cands) == 0 {
		if b.NumStones() == 0 {
			ctr := b.Center()
			return []RankedMove{{Move: move.NewMove(ctr, ctr, c)}}, nil
		}
		return nil, ErrNoCandidates
	}
	depth := s.DepthFor(len(h))
	s.rootDepth = depth

	before := b.Hash()
	movegen.Order(cands, b, c, s.scorer)
	cands = movegen.Truncate(cands, n)
	ranked := make([]RankedMove, 0, len(cands))
	for _, cand := range cands {
		m := move.NewMove(cand.X, cand.Y, c)
		childPV := PVLine{}
		b.Set(cand.X, cand.Y, c)
		var score float64
		if b.IsFive(cand.X, cand.Y) {
			score = s.WinScore()
		} else {
			score = -s.negamax(b, depth-1, math.Inf(-1), math.Inf(1), c.Opponent(), &childPV)
		}
		b.Remove(cand.X, cand.Y)
		pv := PVLine{}
		pv.Update(m, childPV, score)
		ranked = append(ranked, RankedMove{Move: m, Score: score, Variation: pv})
	}
	if b.Hash() != before {
		return nil, ErrBoardModified
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	log.Debug().Int("ranked", len(ranked)).Uint64("nodes", s.nodes.Load()).Msg("rank-moves-returning")
	return ranked, nil
}
