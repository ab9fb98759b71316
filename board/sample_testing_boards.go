package board

// This file contains some sample positions, used solely for testing.

// Position is a plaintext 15x15 board, in the format SetFromPlaintext reads.
type Position string

const (
	// BlackOpenFour has black stones on row 8 from D to G with both ends
	// empty. Whoever is black wins by playing C8 or H8.
	BlackOpenFour Position = `
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . O . O . . . . . . . .
. . . X X X X . . . . . . . .
. . . . . O . . . . . . . . .
. . . . . . . . . O . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
`
	// WhiteOpenFour is the same shape with the colors swapped and one
	// fewer white stone; black, on turn, must block.
	WhiteOpenFour Position = `
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . X . X . . . . . . . .
. . . O O O O . . . . . . . .
. . . . . X . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
`
	// BothHaveFours: white has a four on row 4 blocked on the left, black
	// has an open four on row 11. White, on turn, should take the win at
	// H4 rather than block.
	BothHaveFours Position = `
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . X O O O O . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . O . . . . .
. . . . . . . . . . X X X X .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
`
	// QuietMiddlegame has ten stones and no four for either side.
	QuietMiddlegame Position = `
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . X . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . O . X . . . . . .
. . . . . . . X O . . . . . .
. . . . . . X O X . . . . . .
. . . . . O . . . O . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
. . . . . . . . . . . . . . .
`
)

// SetToPosition loads one of the sample positions. It panics on a
// malformed position, since these are fixed test fixtures.
func (b *Board) SetToPosition(p Position) {
	if err := b.SetFromPlaintext(string(p)); err != nil {
		panic(err)
	}
}
