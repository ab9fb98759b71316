package turnplayer

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/negamax"
)

var ErrGameIsOver = errors.New("the game is over; there is nothing to think about")

// BotTurnPlayer is a game with an engine attached to it.
type BotTurnPlayer struct {
	*BaseTurnPlayer

	mu     sync.Mutex
	solver *negamax.Solver
}

func NewBotTurnPlayer(conf *config.Config, opts *GameOptions, players []game.PlayerInfo) (*BotTurnPlayer, error) {
	opts.SetDefaults(conf)
	settings, err := negamax.SettingsFromConfig(conf)
	if err != nil {
		return nil, err
	}
	settings.BoardSize = opts.BoardSize
	p, err := NewBaseTurnPlayer(opts, players)
	if err != nil {
		return nil, err
	}
	return addBotFields(p, settings)
}

// NewBotTurnPlayerFromGame attaches an engine to an existing game.
func NewBotTurnPlayerFromGame(g *game.Game, settings negamax.Settings) (*BotTurnPlayer, error) {
	settings.BoardSize = g.Board().Dim()
	return addBotFields(&BaseTurnPlayer{g}, settings)
}

func addBotFields(p *BaseTurnPlayer, settings negamax.Settings) (*BotTurnPlayer, error) {
	s, err := negamax.NewSolver(settings)
	if err != nil {
		return nil, err
	}
	return &BotTurnPlayer{BaseTurnPlayer: p, solver: s}, nil
}

// Solver returns the engine. Callers must not use it while a Think task
// is running.
func (p *BotTurnPlayer) Solver() *negamax.Solver {
	return p.solver
}

// Think starts a search for the player on turn on a private copy of the
// board, so the game may be displayed while the engine works. The game
// must not be changed until the task is done.
func (p *BotTurnPlayer) Think(ctx context.Context) *Task {
	b := p.Board().Copy()
	h := p.History()
	c := p.PlayerOnTurn()
	over := p.Over()
	return startTask(ctx, func() (move.Move, error) {
		if over {
			return move.Move{}, ErrGameIsOver
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		m, err := p.solver.ChooseMove(b, h, c)
		if err != nil {
			return move.Move{}, err
		}
		log.Debug().Str("move", m.ShortDescription()).
			Str("reason", string(p.solver.LastReason())).
			Uint64("nodes", p.solver.Nodes()).Msg("bot-thought")
		return m, nil
	})
}

// PlayBest thinks and plays the result into the game.
func (p *BotTurnPlayer) PlayBest(ctx context.Context) (move.Move, error) {
	m, err := p.Think(ctx).Wait(ctx)
	if err != nil {
		return move.Move{}, err
	}
	return m, p.Play(m)
}

// GenerateMoves ranks the top numPlays moves for the player on turn.
func (p *BotTurnPlayer) GenerateMoves(numPlays int) ([]negamax.RankedMove, error) {
	if p.Over() {
		return nil, ErrGameIsOver
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.solver.RankMoves(p.Board().Copy(), p.History(), p.PlayerOnTurn(), numPlays)
}
