package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/domino14/gomoku/board"
)

var (
	ErrBadCoords = errors.New("could not parse coordinates")
)

// Move is a single stone placement. X indexes the row and Y the column,
// matching board.At.
type Move struct {
	X     int         `json:"x" yaml:"x"`
	Y     int         `json:"y" yaml:"y"`
	Color board.Color `json:"color" yaml:"color"`
}

// History is the ordered list of stones placed so far.
type History []Move

var reLetterNumber, reNumberPair *regexp.Regexp

func init() {
	reLetterNumber = regexp.MustCompile(`^(?P<col>[A-Za-z])(?P<row>[0-9]+)$`)
	reNumberPair = regexp.MustCompile(`^(?P<row>[0-9]+)\s*,\s*(?P<col>[0-9]+)$`)
}

func NewMove(x, y int, c board.Color) Move {
	return Move{X: x, Y: y, Color: c}
}

// Coords renders the move as a column letter followed by the 1-based row,
// the same labels ToDisplayText prints.
func (m Move) Coords() string {
	return ToBoardGameCoords(m.X, m.Y)
}

// ShortDescription is used in logs and the shell.
func (m Move) ShortDescription() string {
	return fmt.Sprintf("%s %s", m.Color.DisplayString(), m.Coords())
}

func (m Move) String() string {
	return fmt.Sprintf("<move %s (%d,%d) %s>", m.Coords(), m.X, m.Y, m.Color)
}

// SameSquare ignores color.
func (m Move) SameSquare(o Move) bool {
	return m.X == o.X && m.Y == o.Y
}

// ToBoardGameCoords turns a row/column pair into coordinates like H8.
func ToBoardGameCoords(x, y int) string {
	return fmt.Sprintf("%c%d", 'A'+y, x+1)
}

// FromBoardGameCoords parses either letter-number coordinates (H8) or a
// zero-based "row,col" pair (7,7) and checks them against the board
// dimension.
func FromBoardGameCoords(coords string, dim int) (x, y int, err error) {
	coords = strings.TrimSpace(coords)
	if m := reLetterNumber.FindStringSubmatch(coords); m != nil {
		col := strings.ToUpper(m[1])[0]
		y = int(col - 'A')
		row, _ := strconv.Atoi(m[2])
		x = row - 1
	} else if m := reNumberPair.FindStringSubmatch(coords); m != nil {
		x, _ = strconv.Atoi(m[1])
		y, _ = strconv.Atoi(m[2])
	} else {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, coords)
	}
	if x < 0 || y < 0 || x >= dim || y >= dim {
		return 0, 0, fmt.Errorf("%w: %q is off the board", ErrBadCoords, coords)
	}
	return x, y, nil
}

// Copy returns an independent copy of the history.
func (h History) Copy() History {
	if h == nil {
		return nil
	}
	c := make(History, len(h))
	copy(c, h)
	return c
}

// Last returns the most recent move, if there is one.
func (h History) Last() (Move, bool) {
	if len(h) == 0 {
		return Move{}, false
	}
	return h[len(h)-1], true
}

// Apply plays every move of the history onto an empty board of the given
// dimension.
func (h History) Apply(dim int) (*board.Board, error) {
	b := board.MakeBoard(dim)
	for i, m := range h {
		if !b.IsEmpty(m.X, m.Y) {
			return nil, fmt.Errorf("move %d (%s) is not on an empty square", i+1, m.Coords())
		}
		if !m.Color.Valid() {
			return nil, fmt.Errorf("move %d has invalid color %v", i+1, m.Color)
		}
		b.Set(m.X, m.Y, m.Color)
	}
	return b, nil
}

func (h History) String() string {
	parts := make([]string, len(h))
	for i, m := range h {
		parts[i] = m.ShortDescription()
	}
	return strings.Join(parts, " ")
}
