package equity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/shape"
)

func TestEmptyBoardScoresZero(t *testing.T) {
	b := board.MakeBoard(board.DefaultDim)
	s := NewScorer(shape.DefaultTable(), board.Black)
	assert.Equal(t, 0.0, s.BoardScore(b))
	assert.Equal(t, Totals{}, s.Tally(b))
}

func TestSingleStone(t *testing.T) {
	b := board.MakeBoard(board.DefaultDim)
	b.Set(7, 7, board.Black)
	black := NewScorer(shape.DefaultTable(), board.Black)
	white := NewScorer(shape.DefaultTable(), board.White)
	assert.Equal(t, Totals{Black: 40}, black.Tally(b))
	assert.InDelta(t, 40.0, black.BoardScore(b), 1e-9)
	assert.InDelta(t, -44.0, white.BoardScore(b), 1e-9)
}

func TestCornerStoneIsDead(t *testing.T) {
	b := board.MakeBoard(board.DefaultDim)
	b.Set(0, 0, board.White)
	s := NewScorer(shape.DefaultTable(), board.White)
	assert.Equal(t, 0.0, s.Tally(b).White)
}

func TestRunCountedOnce(t *testing.T) {
	b := board.MakeBoard(board.DefaultDim)
	b.Set(7, 7, board.Black)
	b.Set(7, 8, board.Black)
	s := NewScorer(shape.DefaultTable(), board.Black)
	// One open two along the row, plus each stone alone in the three
	// other directions.
	assert.Equal(t, 260.0, s.Tally(b).Black)
}

func TestDeadFourScoresZero(t *testing.T) {
	b := board.MakeBoard(board.DefaultDim)
	for y := 3; y <= 6; y++ {
		b.Set(7, y, board.Black)
	}
	s := NewScorer(shape.DefaultTable(), board.Black)
	open := s.Tally(b).Black
	b.Set(7, 2, board.White)
	b.Set(7, 7, board.White)
	dead := s.Tally(b).Black
	assert.InDelta(t, shape.DefaultTable().OpenFour, open-dead, 1e-9)
}

func TestOpenFourDominates(t *testing.T) {
	b := board.MakeBoard(board.DefaultDim)
	b.SetToPosition(board.BlackOpenFour)
	s := NewScorer(shape.DefaultTable(), board.Black)
	tally := s.Tally(b)
	assert.GreaterOrEqual(t, tally.Black, 100000.0)
	assert.Less(t, tally.White, 1000.0)
	assert.Greater(t, s.BoardScore(b), 90000.0)
}

func TestSwapAntisymmetry(t *testing.T) {
	for _, p := range []board.Position{board.BlackOpenFour, board.WhiteOpenFour,
		board.BothHaveFours, board.QuietMiddlegame} {
		b := board.MakeBoard(board.DefaultDim)
		b.SetToPosition(p)
		black := NewScorer(shape.DefaultTable(), board.Black)
		white := NewScorer(shape.DefaultTable(), board.White)
		tally := black.Tally(b)
		sb := black.BoardScore(b)
		sw := white.BoardScore(b)
		assert.InDelta(t, tally.Black-1.1*tally.White, sb, 1e-6)
		assert.InDelta(t, tally.White-1.1*tally.Black, sw, 1e-6)
		assert.InDelta(t, -0.1*(tally.Black+tally.White), sb+sw, 1e-6)
	}
}

func TestPointScoreRestoresBoard(t *testing.T) {
	b := board.MakeBoard(board.DefaultDim)
	b.Set(7, 7, board.Black)
	before := b.Hash()
	s := NewScorer(shape.DefaultTable(), board.Black)
	// Open two along the row, lone open stone in the other three lines.
	assert.Equal(t, 230.0, s.PointScore(b, 7, 8, board.Black))
	assert.Equal(t, before, b.Hash())
	assert.Equal(t, board.Empty, b.At(7, 8))
}

func TestPointScoreFive(t *testing.T) {
	b := board.MakeBoard(board.DefaultDim)
	b.SetToPosition(board.BlackOpenFour)
	s := NewScorer(shape.DefaultTable(), board.White)
	assert.GreaterOrEqual(t, s.PointScore(b, 7, 7, board.Black), shape.DefaultTable().Five)
	assert.GreaterOrEqual(t, s.PointScore(b, 7, 2, board.Black), shape.DefaultTable().Five)
}
