package turnplayer

import (
	"strings"

	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
)

// BaseTurnPlayer is a game that can be played with text coordinates.
type BaseTurnPlayer struct {
	*game.Game
}

// NewBaseTurnPlayer is a good entry point
func NewBaseTurnPlayer(opts *GameOptions, players []game.PlayerInfo) (*BaseTurnPlayer, error) {
	g, err := game.NewGame(opts.BoardSize, players)
	if err != nil {
		return nil, err
	}
	if opts.RandomSeats {
		if err := g.RandomizeSeats(); err != nil {
			return nil, err
		}
	}
	return &BaseTurnPlayer{g}, nil
}

// ParseMove turns coordinates such as H8 or 7,7 into a move for the
// player on turn.
func (p *BaseTurnPlayer) ParseMove(coords string) (move.Move, error) {
	x, y, err := move.FromBoardGameCoords(strings.TrimSpace(coords), p.Board().Dim())
	if err != nil {
		return move.Move{}, err
	}
	return move.NewMove(x, y, p.PlayerOnTurn()), nil
}

// PlayCoords parses and plays a move for the player on turn.
func (p *BaseTurnPlayer) PlayCoords(coords string) (move.Move, error) {
	m, err := p.ParseMove(coords)
	if err != nil {
		return move.Move{}, err
	}
	return m, p.Play(m)
}

func (p *BaseTurnPlayer) IsPlaying() bool {
	return !p.Over()
}
