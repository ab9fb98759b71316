package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
)

func TestFromBoardGameCoords(t *testing.T) {
	is := is.New(t)
	type testcase struct {
		coords string
		x, y   int
		err    bool
	}
	cases := []testcase{
		{"H8", 7, 7, false},
		{"a1", 0, 0, false},
		{"O15", 14, 14, false},
		{"7,3", 7, 3, false},
		{" 0 , 14 ", 0, 14, false},
		{"P1", 0, 0, true},
		{"A16", 0, 0, true},
		{"15,0", 0, 0, true},
		{"hello", 0, 0, true},
	}
	for _, tc := range cases {
		x, y, err := FromBoardGameCoords(tc.coords, board.DefaultDim)
		if tc.err {
			is.True(errors.Is(err, ErrBadCoords))
			continue
		}
		is.NoErr(err)
		is.Equal(x, tc.x)
		is.Equal(y, tc.y)
	}
}

func TestCoordsRoundTrip(t *testing.T) {
	is := is.New(t)
	m := NewMove(7, 3, board.Black)
	is.Equal(m.Coords(), "D8")
	x, y, err := FromBoardGameCoords(m.Coords(), board.DefaultDim)
	is.NoErr(err)
	is.True(m.SameSquare(NewMove(x, y, board.White)))
	is.Equal(m.ShortDescription(), "X D8")
}

func TestHistoryApply(t *testing.T) {
	is := is.New(t)
	h := History{
		NewMove(7, 7, board.Black),
		NewMove(7, 8, board.White),
		NewMove(8, 8, board.Black),
	}
	b, err := h.Apply(board.DefaultDim)
	is.NoErr(err)
	is.Equal(b.NumStones(), 3)
	is.Equal(b.At(7, 8), board.White)

	last, ok := h.Last()
	is.True(ok)
	is.Equal(last, NewMove(8, 8, board.Black))

	h = append(h, NewMove(7, 7, board.White))
	_, err = h.Apply(board.DefaultDim)
	is.True(err != nil)
}

func TestHistoryCopy(t *testing.T) {
	is := is.New(t)
	h := History{NewMove(1, 1, board.Black)}
	c := h.Copy()
	c[0].X = 5
	is.Equal(h[0].X, 1)
	is.Equal(History(nil).Copy(), nil)
}
