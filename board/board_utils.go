package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRaggedBoard = errors.New("board rows must all have the board's dimension")
	ErrBadCell     = errors.New("unrecognized board cell")
)

// ToDisplayText renders the board with column letters across the top and
// 1-based row numbers down the side.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	n := b.Dim()
	sb.WriteString("\n   ")
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%c ", 'A'+i))
	}
	sb.WriteString("\n   " + strings.Repeat("-", n*2) + "\n")
	for x := 0; x < n; x++ {
		sb.WriteString(fmt.Sprintf("%2d|", x+1))
		for y := 0; y < n; y++ {
			sb.WriteString(b.At(x, y).DisplayString())
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return sb.String()
}

// FromRows builds a board from a grid indexed [x][y].
func FromRows(rows [][]Color) (*Board, error) {
	dim := len(rows)
	b := MakeBoard(dim)
	for x, row := range rows {
		if len(row) != dim {
			return nil, ErrRaggedBoard
		}
		for y, c := range row {
			if c != Empty && !c.Valid() {
				return nil, fmt.Errorf("%w: %d at %d,%d", ErrBadCell, c, x, y)
			}
			if c != Empty {
				b.Set(x, y, c)
			}
		}
	}
	return b, nil
}

// SetFromPlaintext replaces the board contents with a plaintext grid, one
// row per line, using the characters of DisplayString. Spaces and a
// surrounding `|` frame are ignored, as are blank lines.
func (b *Board) SetFromPlaintext(text string) error {
	var rows []string
	// A framed board (as printed by ToDisplayText) carries a header and
	// separator lines; only the framed lines are rows.
	framed := strings.ContainsRune(text, '|')
	for _, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, '|'); i >= 0 {
			line = line[i+1:]
			if j := strings.LastIndexByte(line, '|'); j >= 0 {
				line = line[:j]
			}
		} else if framed {
			continue
		}
		line = strings.ReplaceAll(line, " ", "")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != b.dim {
		return fmt.Errorf("%w: got %d rows, want %d", ErrRaggedBoard, len(rows), b.dim)
	}
	cells := make([]Color, 0, b.dim*b.dim)
	for x, row := range rows {
		if len(row) != b.dim {
			return fmt.Errorf("%w: row %d has %d cells", ErrRaggedBoard, x+1, len(row))
		}
		for _, ch := range row {
			switch ch {
			case '.':
				cells = append(cells, Empty)
			case 'X', 'x':
				cells = append(cells, Black)
			case 'O', 'o':
				cells = append(cells, White)
			default:
				return fmt.Errorf("%w: %q", ErrBadCell, ch)
			}
		}
	}
	b.Clear()
	for i, c := range cells {
		if c != Empty {
			b.Set(i/b.dim, i%b.dim, c)
		}
	}
	return nil
}
