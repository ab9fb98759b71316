package turnplayer

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
)

// GameOptions are the per-game choices a shell or service makes before
// creating a game.
type GameOptions struct {
	BoardSize int
	// BotColor is the color the engine plays; Empty means no bot.
	BotColor board.Color
	// RandomSeats decides who gets black with a coin flip.
	RandomSeats bool
}

func (opts *GameOptions) SetDefaults(cfg *config.Config) {
	if opts.BoardSize == 0 {
		opts.BoardSize = cfg.GetInt(config.ConfigBoardSize)
		log.Debug().Int("size", opts.BoardSize).Msg("using-default-board-size")
	}
}

// SetBotColor parses "black", "white" or "none".
func (opts *GameOptions) SetBotColor(name string) error {
	if name == "none" || name == "off" {
		opts.BotColor = board.Empty
		return nil
	}
	c, err := board.ColorFromString(name)
	if err != nil {
		return fmt.Errorf("%w; valid options: black, white, none", err)
	}
	opts.BotColor = c
	return nil
}

func (opts *GameOptions) SetBoardSize(size int) error {
	if size < board.WinLength || size > board.MaxDim {
		return fmt.Errorf("%d is not a supported board size", size)
	}
	opts.BoardSize = size
	return nil
}
