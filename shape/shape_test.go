package shape

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
)

var horizontal = board.LineDirections[1]

func TestTableScore(t *testing.T) {
	is := is.New(t)
	tb := DefaultTable()
	type testcase struct {
		count, open int
		expected    float64
	}
	cases := []testcase{
		{5, 0, 1000000},
		{5, 2, 1000000},
		{6, 1, 1000000},
		{4, 2, 100000},
		{4, 1, 10000},
		{4, 0, 0},
		{3, 2, 5000},
		{3, 1, 500},
		{3, 0, 0},
		{2, 2, 200},
		{2, 1, 50},
		{1, 2, 10},
		{1, 1, 0},
		{1, 0, 0},
	}
	for _, tc := range cases {
		is.Equal(tb.Score(tc.count, tc.open), tc.expected)
	}
}

func TestOpenFourExample(t *testing.T) {
	is := is.New(t)
	b := board.MakeBoard(board.DefaultDim)
	b.SetToPosition(board.BlackOpenFour)
	tb := DefaultTable()
	for y := 3; y <= 6; y++ {
		is.Equal(EvaluateLine(tb, b, 7, y, horizontal, board.Black), 100000.0)
		l := Scan(b, 7, y, horizontal, board.Black)
		is.Equal(l, Line{Count: 4, OpenEnds: 2, Blocked: 0})
	}
}

func TestFourOrdering(t *testing.T) {
	is := is.New(t)
	tb := DefaultTable()
	b := board.MakeBoard(board.DefaultDim)
	for y := 3; y <= 6; y++ {
		b.Set(7, y, board.White)
	}
	open := EvaluateLine(tb, b, 7, 4, horizontal, board.White)
	b.Set(7, 2, board.Black)
	half := EvaluateLine(tb, b, 7, 4, horizontal, board.White)
	b.Set(7, 7, board.Black)
	dead := EvaluateLine(tb, b, 7, 4, horizontal, board.White)
	is.True(open > half)
	is.True(half > dead)
	is.Equal(dead, 0.0)

	l := Scan(b, 7, 4, horizontal, board.White)
	is.Equal(l.Blocked, 2)
	is.Equal(l.OpenEnds, 0)
}

func TestFiveIgnoresOpenEnds(t *testing.T) {
	is := is.New(t)
	tb := DefaultTable()
	b := board.MakeBoard(board.DefaultDim)
	// Five against the left edge, blocked on the right.
	for y := 0; y < 5; y++ {
		b.Set(0, y, board.Black)
	}
	b.Set(0, 5, board.White)
	for y := 0; y < 5; y++ {
		is.Equal(EvaluateLine(tb, b, 0, y, horizontal, board.Black), tb.Five)
		is.Equal(Scan(b, 0, y, horizontal, board.Black).Score(tb), tb.Five)
	}
}

func TestEdgeIsNotOpen(t *testing.T) {
	is := is.New(t)
	tb := DefaultTable()
	b := board.MakeBoard(board.DefaultDim)
	b.Set(0, 0, board.Black)
	b.Set(0, 1, board.Black)
	l := Scan(b, 0, 0, horizontal, board.Black)
	is.Equal(l, Line{Count: 2, OpenEnds: 1, Blocked: 1})
	is.Equal(EvaluateLine(tb, b, 0, 0, horizontal, board.Black), tb.HalfTwo)
}

func TestScanAgreesWithEvaluateLine(t *testing.T) {
	is := is.New(t)
	tb := DefaultTable()
	for _, p := range []board.Position{board.BlackOpenFour, board.WhiteOpenFour,
		board.BothHaveFours, board.QuietMiddlegame} {
		b := board.MakeBoard(board.DefaultDim)
		b.SetToPosition(p)
		for x := 0; x < b.Dim(); x++ {
			for y := 0; y < b.Dim(); y++ {
				c := b.At(x, y)
				if c == board.Empty {
					continue
				}
				for _, d := range board.LineDirections {
					is.Equal(Scan(b, x, y, d, c).Score(tb), EvaluateLine(tb, b, x, y, d, c))
				}
			}
		}
	}
}

func TestReadTable(t *testing.T) {
	is := is.New(t)
	tb, err := ReadTable([]byte("open_one: 5\nhalf_two: 40\n"))
	is.NoErr(err)
	is.Equal(tb.OpenOne, 5.0)
	is.Equal(tb.HalfTwo, 40.0)
	is.Equal(tb.Five, DefaultTable().Five)

	_, err = ReadTable([]byte("open_three: 20000\n"))
	is.True(errors.Is(err, ErrTableOrder))
}

func TestLoadTableRoundTrip(t *testing.T) {
	is := is.New(t)
	data, err := DefaultTable().Marshal()
	is.NoErr(err)
	path := filepath.Join(t.TempDir(), "shapes.yaml")
	is.NoErr(os.WriteFile(path, data, 0o644))
	tb, err := LoadTable(path)
	is.NoErr(err)
	is.Equal(tb, DefaultTable())
}
