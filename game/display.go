package game

import (
	"fmt"
	"strings"

	"github.com/domino14/gomoku/board"
)

func splitSubN(s string, n int) []string {
	sub := ""
	subs := []string{}

	runes := []rune(s)
	l := len(runes)
	for i, r := range runes {
		sub = sub + string(r)
		if (i+1)%n == 0 {
			subs = append(subs, sub)
			sub = ""
		} else if (i + 1) == l {
			subs = append(subs, sub)
		}
	}

	return subs
}

func addText(lines []string, row int, hpad int, text string) {
	maxTextSize := 42
	sp := splitSubN(text, maxTextSize)

	for _, chunk := range sp {
		if row >= len(lines) {
			return
		}
		lines[row] = lines[row] + strings.Repeat(" ", hpad) + chunk
		row++
	}
}

// ToDisplayText turns the current state of the game into a displayable
// string: the board with the players, the last move and the result to
// its right.
func (g *Game) ToDisplayText() string {
	bts := strings.Split(g.board.ToDisplayText(), "\n")
	hpadding := 3
	vpadding := 1

	for pi, p := range g.players {
		addText(bts, vpadding+pi, hpadding,
			p.stateString(!g.over && g.onturn == p.color))
	}

	addText(bts, vpadding+3, hpadding, fmt.Sprintf("Move %d", len(g.history)))
	if m, ok := g.LastMove(); ok {
		addText(bts, vpadding+4, hpadding, "Last: "+m.ShortDescription())
	}

	if g.over {
		result := "Game is over: draw."
		if g.winner != board.Empty {
			result = fmt.Sprintf("Game is over: %s (%s) wins.",
				g.Player(g.winner).Nickname, g.winner)
		}
		addText(bts, vpadding+6, hpadding, result)
	}
	return strings.Join(bts, "\n")
}
