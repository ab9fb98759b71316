package board

import "fmt"

// A Color is the content of a single intersection: nothing, a black stone,
// or a white stone. No other value is ever written to a board.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other stone color. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// Valid is true for the two stone colors.
func (c Color) Valid() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// DisplayString is the single-character form used in text boards.
func (c Color) DisplayString() string {
	switch c {
	case Black:
		return "X"
	case White:
		return "O"
	}
	return "."
}

// ColorFromString parses the names accepted on the command line and in
// request payloads.
func ColorFromString(s string) (Color, error) {
	switch s {
	case "black", "b", "x", "X", "1":
		return Black, nil
	case "white", "w", "o", "O", "2":
		return White, nil
	}
	return Empty, fmt.Errorf("unrecognized color %q", s)
}
