// Package automatic plays the engine against itself, for tuning shape
// tables and search settings and for collecting game records.
package automatic

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/negamax"
)

// DefaultOpeningStones is how many random stones start each game.
// Without them the deterministic engine would play the same game every
// time.
const DefaultOpeningStones = 3

// openingRadius bounds the random opening stones to a box around the
// center.
const openingRadius = 3

// PlayerSpec names a player and its engine settings.
type PlayerSpec struct {
	Name     string
	Settings negamax.Settings
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game    *game.Game
	config  *config.Config
	logchan chan string
	// gamechan receives each finished game.
	gamechan chan game.Record

	specs         [2]PlayerSpec
	solvers       [2]*negamax.Solver
	openingStones int
	rng           *frand.RNG
}

// NewGameRunner just instantiates and initializes a game runner, with
// both players using the configured settings.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	settings, err := negamax.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	r := &GameRunner{logchan: logchan, config: cfg, openingStones: DefaultOpeningStones}
	err = r.Init(PlayerSpec{Name: "p1", Settings: settings}, PlayerSpec{Name: "p2", Settings: settings})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Init sets the two players. p1 has black in the first game.
func (r *GameRunner) Init(p1, p2 PlayerSpec) error {
	if p1.Settings.BoardSize != p2.Settings.BoardSize {
		return fmt.Errorf("players disagree on board size: %d vs %d",
			p1.Settings.BoardSize, p2.Settings.BoardSize)
	}
	r.specs = [2]PlayerSpec{p1, p2}
	for i, spec := range r.specs {
		s, err := negamax.NewSolver(spec.Settings)
		if err != nil {
			return fmt.Errorf("player %s: %w", spec.Name, err)
		}
		r.solvers[i] = s
	}
	return nil
}

// SetOpeningStones sets how many random stones each game starts with.
func (r *GameRunner) SetOpeningStones(n int) {
	r.openingStones = n
}

// SetSeed makes the random openings reproducible. seed must be 32 bytes.
func (r *GameRunner) SetSeed(seed [32]byte) {
	r.rng = frand.NewCustom(seed[:], 1024, 12)
}

func (r *GameRunner) intn(n int) int {
	if r.rng != nil {
		return r.rng.Intn(n)
	}
	return frand.Intn(n)
}

// StartGame creates a new game. When swap is set, p2 gets black.
func (r *GameRunner) StartGame(swap bool) error {
	players := []game.PlayerInfo{
		{Nickname: r.specs[0].Name, Bot: true},
		{Nickname: r.specs[1].Name, Bot: true},
	}
	if swap {
		players[0], players[1] = players[1], players[0]
	}
	g, err := game.NewGame(r.specs[0].Settings.BoardSize, players)
	if err != nil {
		return err
	}
	r.game = g
	return r.playOpening()
}

// playOpening places the random opening stones, alternating colors. It
// places at most one stone per cell of the opening box.
func (r *GameRunner) playOpening() error {
	b := r.game.Board()
	lo := max(0, b.Center()-openingRadius)
	hi := min(b.Dim()-1, b.Center()+openingRadius)
	span := hi - lo + 1
	n := min(r.openingStones, span*span)
	for i := 0; i < n && !r.game.Over(); i++ {
		var x, y int
		for {
			x, y = lo+r.intn(span), lo+r.intn(span)
			if b.IsEmpty(x, y) {
				break
			}
		}
		if err := r.game.PlayMove(x, y, r.game.PlayerOnTurn()); err != nil {
			return err
		}
	}
	return nil
}

// solverFor returns the solver of the player holding color c.
func (r *GameRunner) solverFor(c board.Color) *negamax.Solver {
	if r.game.Player(c).Nickname == r.specs[0].Name {
		return r.solvers[0]
	}
	return r.solvers[1]
}

// PlayBestTurn asks the engine of the player on turn for a move and
// plays it.
func (r *GameRunner) PlayBestTurn() error {
	c := r.game.PlayerOnTurn()
	s := r.solverFor(c)
	m, err := s.ChooseMove(r.game.Board(), r.game.History(), c)
	if err != nil {
		return err
	}
	log.Debug().Str("player", r.game.Player(c).Nickname).
		Str("move", m.ShortDescription()).Msg("auto-turn")
	return r.game.Play(m)
}

// playFull plays a game from the opening to the end.
func (r *GameRunner) playFull(swap bool) error {
	if err := r.StartGame(swap); err != nil {
		return err
	}
	for !r.game.Over() {
		if err := r.PlayBestTurn(); err != nil {
			return err
		}
	}
	winner := "draw"
	if w := r.game.Winner(); w != board.Empty {
		winner = r.game.Player(w).Nickname
	}
	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v\n",
			r.game.ID(),
			r.specs[0].Name,
			r.specs[1].Name,
			winner,
			r.game.NumMoves(),
			r.game.Player(board.Black).Nickname)
	}
	if r.gamechan != nil {
		r.gamechan <- r.game.Record()
	}
	return nil
}

// Game is the current or last game played.
func (r *GameRunner) Game() *game.Game {
	return r.game
}
