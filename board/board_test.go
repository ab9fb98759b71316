package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestSetAndCount(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(DefaultDim)
	is.Equal(b.NumStones(), 0)
	b.Set(7, 7, Black)
	b.Set(7, 8, White)
	is.Equal(b.NumStones(), 2)
	b.Set(7, 8, Black)
	is.Equal(b.NumStones(), 2)
	b.Remove(7, 7)
	is.Equal(b.NumStones(), 1)
	is.True(b.IsEmpty(7, 7))
	is.True(!b.IsEmpty(7, 8))
	is.True(!b.IsEmpty(-1, 0))
	is.True(!b.IsEmpty(0, DefaultDim))
}

func TestSetFromPlaintext(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(DefaultDim)
	b.SetToPosition(BlackOpenFour)
	is.Equal(b.NumStones(), 8)
	for y := 3; y <= 6; y++ {
		is.Equal(b.At(7, y), Black)
	}
	is.Equal(b.At(6, 4), White)
	is.Equal(b.At(7, 2), Empty)
	is.Equal(b.At(7, 7), Empty)
}

func TestSetFromPlaintextRoundTrip(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(DefaultDim)
	b.SetToPosition(QuietMiddlegame)
	c := MakeBoard(DefaultDim)
	is.NoErr(c.SetFromPlaintext(b.ToDisplayText()))
	is.True(b.Equals(c))
	is.Equal(b.Hash(), c.Hash())
}

func TestSetFromPlaintextErrors(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(5)
	err := b.SetFromPlaintext("...\n...\n")
	is.True(err != nil)
	err = b.SetFromPlaintext(".....\n.....\n..Z..\n.....\n.....\n")
	is.True(err != nil)
}

func TestSetFromPlaintextKeepsBoardOnError(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(5)
	is.NoErr(b.SetFromPlaintext("X....\n.O...\n.....\n.....\n.....\n"))
	before := b.Copy()

	err := b.SetFromPlaintext("XXXXX\nOOOOO\n..Z..\n.....\n.....\n")
	is.True(errors.Is(err, ErrBadCell))
	is.True(b.Equals(before))
	is.Equal(b.NumStones(), 2)

	err = b.SetFromPlaintext("XXXXX\nOOOOO\n....\n.....\n.....\n")
	is.True(errors.Is(err, ErrRaggedBoard))
	is.True(b.Equals(before))
}

func TestFiveFrom(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(DefaultDim)
	for i := 0; i < 5; i++ {
		b.Set(2+i, 10-i, White)
	}
	is.True(b.IsFive(4, 8))
	cells := b.FiveFrom(4, 8)
	is.Equal(len(cells), 5)
	is.Equal(cells[0], [2]int{4, 8})

	b.Remove(6, 6)
	is.True(!b.IsFive(4, 8))
	is.Equal(b.FiveFrom(4, 8), nil)
}

func TestIsFiveAtEdge(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(DefaultDim)
	for y := 10; y < 15; y++ {
		b.Set(0, y, Black)
	}
	is.True(b.IsFive(0, 14))
	is.True(b.IsFive(0, 10))
	is.True(!b.IsFive(1, 10))
}

func TestHashChanges(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(DefaultDim)
	h := b.Hash()
	b.Set(3, 3, Black)
	is.True(b.Hash() != h)
	b.Remove(3, 3)
	is.Equal(b.Hash(), h)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(DefaultDim)
	b.SetToPosition(WhiteOpenFour)
	c := b.Copy()
	c.Set(0, 0, Black)
	is.Equal(b.At(0, 0), Empty)
	is.Equal(c.NumStones(), b.NumStones()+1)
}

func TestFromRows(t *testing.T) {
	is := is.New(t)
	b, err := FromRows([][]Color{
		{Empty, Black, Empty},
		{White, Empty, Empty},
		{Empty, Empty, Black},
	})
	is.NoErr(err)
	is.Equal(b.Dim(), 3)
	is.Equal(b.NumStones(), 3)
	is.Equal(b.At(1, 0), White)

	_, err = FromRows([][]Color{{Empty, Empty}, {Empty}})
	is.Equal(err, ErrRaggedBoard)
	_, err = FromRows([][]Color{{Color(7)}})
	is.True(err != nil)
}

func TestOpponent(t *testing.T) {
	is := is.New(t)
	is.Equal(Black.Opponent(), White)
	is.Equal(White.Opponent(), Black)
	is.Equal(Empty.Opponent(), Empty)
	c, err := ColorFromString("white")
	is.NoErr(err)
	is.Equal(c, White)
	_, err = ColorFromString("red")
	is.True(err != nil)
}
