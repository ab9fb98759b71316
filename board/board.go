// Package board holds the gomoku grid. The grid is shared by reference
// between the game and the search; the search places and removes stones on
// it directly instead of copying it per node.
package board

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

const (
	// DefaultDim is the standard 15x15 board.
	DefaultDim = 15
	// WinLength is the number of stones in a row that wins.
	WinLength = 5
	// MaxDim is the largest board column letters can name.
	MaxDim = 26
)

// Direction is a unit step along one of the four line orientations.
type Direction struct {
	DX, DY int
}

// LineDirections are the four distinct orientations a line can take:
// along a row, along a column, and the two diagonals.
var LineDirections = [4]Direction{
	{DX: 1, DY: 0},
	{DX: 0, DY: 1},
	{DX: 1, DY: 1},
	{DX: 1, DY: -1},
}

// Board is a square grid of colors, stored row-major.
type Board struct {
	dim     int
	squares []Color
	stones  int
}

// MakeBoard creates an empty board of the given dimension.
func MakeBoard(dim int) *Board {
	return &Board{
		dim:     dim,
		squares: make([]Color, dim*dim),
	}
}

func (b *Board) Dim() int {
	return b.dim
}

// Center returns the coordinate of the center intersection.
func (b *Board) Center() int {
	return b.dim / 2
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.dim && y < b.dim
}

// At returns the color at (x, y). The caller must pass in-bounds coordinates.
func (b *Board) At(x, y int) Color {
	return b.squares[x*b.dim+y]
}

// Set places a color at (x, y). Setting Empty is the same as Remove.
func (b *Board) Set(x, y int, c Color) {
	idx := x*b.dim + y
	prev := b.squares[idx]
	if prev == Empty && c != Empty {
		b.stones++
	} else if prev != Empty && c == Empty {
		b.stones--
	}
	b.squares[idx] = c
}

// Remove clears (x, y).
func (b *Board) Remove(x, y int) {
	b.Set(x, y, Empty)
}

// IsEmpty is true if (x, y) is on the board and unoccupied.
func (b *Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == Empty
}

// NumStones is the number of occupied intersections.
func (b *Board) NumStones() int {
	return b.stones
}

// IsFull is true when no empty intersection remains.
func (b *Board) IsFull() bool {
	return b.stones == b.dim*b.dim
}

// Clear empties the board.
func (b *Board) Clear() {
	for i := range b.squares {
		b.squares[i] = Empty
	}
	b.stones = 0
}

// Copy returns a deep copy. Callers that hand a board to a background
// search should hand it a copy.
func (b *Board) Copy() *Board {
	n := &Board{dim: b.dim, stones: b.stones}
	n.squares = make([]Color, len(b.squares))
	copy(n.squares, b.squares)
	return n
}

// CopyFrom overwrites this board with the contents of another board of the
// same dimension.
func (b *Board) CopyFrom(other *Board) {
	if b.dim != other.dim {
		b.dim = other.dim
		b.squares = make([]Color, len(other.squares))
	}
	copy(b.squares, other.squares)
	b.stones = other.stones
}

// Equals compares two boards cell by cell.
func (b *Board) Equals(other *Board) bool {
	if b.dim != other.dim {
		return false
	}
	for i := range b.squares {
		if b.squares[i] != other.squares[i] {
			return false
		}
	}
	return true
}

// Hash is a fingerprint of the grid contents. It is used to check that a
// search leaves the board as it found it, and to tag positions in logs.
func (b *Board) Hash() uint64 {
	buf := make([]byte, 2+len(b.squares))
	binary.LittleEndian.PutUint16(buf, uint16(b.dim))
	for i, c := range b.squares {
		buf[2+i] = byte(c)
	}
	return xxhash.Sum64(buf)
}

// Rows returns the grid as a fresh slice of rows, indexed [x][y].
func (b *Board) Rows() [][]Color {
	rows := make([][]Color, b.dim)
	for x := 0; x < b.dim; x++ {
		rows[x] = make([]Color, b.dim)
		copy(rows[x], b.squares[x*b.dim:(x+1)*b.dim])
	}
	return rows
}

// CountDirection counts consecutive stones of color c starting one step
// from (x, y) in direction d, up to max steps.
func (b *Board) CountDirection(x, y int, d Direction, c Color, max int) int {
	n := 0
	for i := 1; i <= max; i++ {
		nx, ny := x+d.DX*i, y+d.DY*i
		if !b.InBounds(nx, ny) || b.At(nx, ny) != c {
			break
		}
		n++
	}
	return n
}

// IsFive is true if the stone at (x, y) is part of a line of at least
// five stones of its color.
func (b *Board) IsFive(x, y int) bool {
	c := b.At(x, y)
	if c == Empty {
		return false
	}
	for _, d := range LineDirections {
		count := 1 +
			b.CountDirection(x, y, d, c, WinLength-1) +
			b.CountDirection(x, y, Direction{-d.DX, -d.DY}, c, WinLength-1)
		if count >= WinLength {
			return true
		}
	}
	return false
}

// FiveFrom returns the stones forming a winning line through (x, y), or
// nil if there is none. At most four stones are collected on each side.
func (b *Board) FiveFrom(x, y int) [][2]int {
	c := b.At(x, y)
	if c == Empty {
		return nil
	}
	for _, d := range LineDirections {
		cells := [][2]int{{x, y}}
		for i := 1; i < WinLength; i++ {
			nx, ny := x+d.DX*i, y+d.DY*i
			if !b.InBounds(nx, ny) || b.At(nx, ny) != c {
				break
			}
			cells = append(cells, [2]int{nx, ny})
		}
		for i := 1; i < WinLength; i++ {
			nx, ny := x-d.DX*i, y-d.DY*i
			if !b.InBounds(nx, ny) || b.At(nx, ny) != c {
				break
			}
			cells = append(cells, [2]int{nx, ny})
		}
		if len(cells) >= WinLength {
			return cells
		}
	}
	return nil
}
