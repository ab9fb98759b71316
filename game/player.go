package game

import (
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
)

// PlayerInfo identifies one side of a game.
type PlayerInfo struct {
	Nickname string `yaml:"nickname" json:"nickname"`
	RealName string `yaml:"real_name,omitempty" json:"real_name,omitempty"`
	Bot      bool   `yaml:"bot,omitempty" json:"bot,omitempty"`
}

type playerState struct {
	PlayerInfo
	color board.Color
	moves int
}

func (p *playerState) stateString(myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	kind := "human"
	if p.Bot {
		kind = "bot"
	}
	return fmt.Sprintf("%4s%s (%s, %s) %d stones", onturn, p.Nickname,
		p.color.DisplayString(), kind, p.moves)
}

// seatIndex maps a stone color to its seat: black sits at 0.
func seatIndex(c board.Color) int {
	if c == board.White {
		return 1
	}
	return 0
}

// RandomizeSeats gives black to either player with equal chance. It must
// be called before the first move.
func (g *Game) RandomizeSeats() error {
	if len(g.history) > 0 {
		return ErrGameStarted
	}
	if frand.Intn(2) == 1 {
		g.SwapSeats()
	}
	return nil
}

// SwapSeats exchanges which player has black.
func (g *Game) SwapSeats() {
	g.players[0].PlayerInfo, g.players[1].PlayerInfo = g.players[1].PlayerInfo, g.players[0].PlayerInfo
}
