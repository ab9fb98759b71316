package shape

import "github.com/domino14/gomoku/board"

// MaxReach is how far a scan looks along each half of a line.
const MaxReach = 4

// Line describes the run through an anchor cell along one direction.
type Line struct {
	// Count includes the anchor cell.
	Count int
	// OpenEnds counts the ends that stopped on an empty in-bounds cell.
	OpenEnds int
	// Blocked counts the ends that stopped on an opponent stone or the
	// board edge.
	Blocked int
}

// Scan walks up to MaxReach cells each way from (x, y) along d, treating
// the anchor as a stone of color c whatever it currently holds.
func Scan(b *board.Board, x, y int, d board.Direction, c board.Color) Line {
	l := Line{Count: 1}
	for _, sign := range [2]int{1, -1} {
		for i := 1; i <= MaxReach; i++ {
			nx, ny := x+sign*d.DX*i, y+sign*d.DY*i
			if !b.InBounds(nx, ny) {
				l.Blocked++
				break
			}
			cell := b.At(nx, ny)
			if cell == c {
				l.Count++
				continue
			}
			if cell == board.Empty {
				l.OpenEnds++
			} else {
				l.Blocked++
			}
			break
		}
	}
	return l
}

// Score scores a scanned line with the given table.
func (l Line) Score(t Table) float64 {
	return t.Score(l.Count, l.OpenEnds)
}

// EvaluateLine is the point-heuristic variant of Scan: it only tracks the
// run length and the open ends, then scores the result.
func EvaluateLine(t Table, b *board.Board, x, y int, d board.Direction, c board.Color) float64 {
	count, open := 1, 0
	for _, sign := range [2]int{1, -1} {
		for i := 1; i <= MaxReach; i++ {
			nx, ny := x+sign*d.DX*i, y+sign*d.DY*i
			if !b.InBounds(nx, ny) {
				break
			}
			cell := b.At(nx, ny)
			if cell == c {
				count++
				continue
			}
			if cell == board.Empty {
				open++
			}
			break
		}
	}
	return t.Score(count, open)
}
