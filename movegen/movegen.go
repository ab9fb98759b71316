// Package movegen generates candidate moves: the empty intersections near
// the stones already on the board, ranked by a quick attack/defense
// heuristic so the search sees the promising ones first.
package movegen

import (
	"github.com/domino14/gomoku/board"
)

// DefaultRadius is the Chebyshev distance from an existing stone within
// which empty cells are considered.
const DefaultRadius = 2

// Candidate is an empty cell the side to move might play, with the
// heuristic score the orderer assigned to it.
type Candidate struct {
	X, Y  int
	Score float64
}

// Generator finds candidates. It keeps a scratch buffer between calls,
// so a Generator must not be shared between goroutines.
type Generator struct {
	radius int
	seen   []bool
}

func NewGenerator(radius int) *Generator {
	return &Generator{radius: radius}
}

func (g *Generator) Radius() int {
	return g.radius
}

// Generate returns each distinct empty cell within the radius of any
// stone, in row-major order. An empty board yields no candidates. The
// returned slice belongs to the caller.
func (g *Generator) Generate(b *board.Board) []Candidate {
	n := b.Dim()
	if len(g.seen) != n*n {
		g.seen = make([]bool, n*n)
	} else {
		for i := range g.seen {
			g.seen[i] = false
		}
	}
	if b.NumStones() == 0 {
		return nil
	}
	count := 0
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if b.At(x, y) == board.Empty {
				continue
			}
			for dx := -g.radius; dx <= g.radius; dx++ {
				for dy := -g.radius; dy <= g.radius; dy++ {
					nx, ny := x+dx, y+dy
					if !b.IsEmpty(nx, ny) || g.seen[nx*n+ny] {
						continue
					}
					g.seen[nx*n+ny] = true
					count++
				}
			}
		}
	}
	cands := make([]Candidate, 0, count)
	for i, s := range g.seen {
		if s {
			cands = append(cands, Candidate{X: i / n, Y: i % n})
		}
	}
	return cands
}
