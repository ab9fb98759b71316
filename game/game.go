// Package game encapsulates the rules of a gomoku game: whose turn it is,
// which placements are legal, when the game is won or drawn, and undo.
// A Game doesn't care how it is played; bots and humans play it from the
// outside.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

var (
	ErrGameOver      = errors.New("the game is over")
	ErrOccupied      = errors.New("that point is already occupied")
	ErrOutOfBounds   = errors.New("that point is off the board")
	ErrNotOnTurn     = errors.New("it is not that color's turn")
	ErrNothingToUndo = errors.New("need at least two moves to undo")
	ErrGameStarted   = errors.New("the game has already started")
	ErrPlayerCount   = errors.New("a game needs exactly two players")
)

// Game is the internal game structure. The board is owned by the game;
// callers that search on it must hand the search a copy or not touch the
// game until the search returns.
type Game struct {
	id      string
	board   *board.Board
	history move.History
	onturn  board.Color
	players [2]*playerState

	over     bool
	winner   board.Color
	winCells [][2]int
}

// NewGame creates a game on a dim x dim board. The first player gets
// black and moves first.
func NewGame(dim int, players []PlayerInfo) (*Game, error) {
	if len(players) != 2 {
		return nil, ErrPlayerCount
	}
	if dim < board.WinLength {
		return nil, fmt.Errorf("board size %d is too small", dim)
	}
	g := &Game{
		id:    uuid.NewString(),
		board: board.MakeBoard(dim),
		players: [2]*playerState{
			{PlayerInfo: players[0], color: board.Black},
			{PlayerInfo: players[1], color: board.White},
		},
	}
	g.Reset()
	return g, nil
}

// Reset clears the board and history and gives black the move. The ID
// and seats are kept.
func (g *Game) Reset() {
	g.board.Clear()
	g.history = g.history[:0]
	g.onturn = board.Black
	g.over = false
	g.winner = board.Empty
	g.winCells = nil
	for _, p := range g.players {
		p.moves = 0
	}
}

// PlayMove places a stone of color c at (x, y). It fails without changing
// anything if the game is over, the point is off the board or taken, or c
// is not on turn.
func (g *Game) PlayMove(x, y int, c board.Color) error {
	if g.over {
		return ErrGameOver
	}
	if !g.board.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if g.board.At(x, y) != board.Empty {
		return fmt.Errorf("%w: %s", ErrOccupied, move.ToBoardGameCoords(x, y))
	}
	if c != g.onturn {
		return fmt.Errorf("%w: %v", ErrNotOnTurn, c)
	}
	g.board.Set(x, y, c)
	m := move.NewMove(x, y, c)
	g.history = append(g.history, m)
	g.players[seatIndex(c)].moves++

	if cells := g.board.FiveFrom(x, y); cells != nil {
		g.over = true
		g.winner = c
		g.winCells = cells
		log.Debug().Str("winner", c.String()).Str("move", m.Coords()).Msg("game-won")
		return nil
	}
	if g.board.IsFull() {
		g.over = true
		g.winner = board.Empty
		log.Debug().Msg("game-drawn")
		return nil
	}
	g.onturn = c.Opponent()
	return nil
}

// Play is PlayMove for a move value.
func (g *Game) Play(m move.Move) error {
	return g.PlayMove(m.X, m.Y, m.Color)
}

// Undo takes back the last two moves, one for each side, and gives black
// the move. A finished game becomes playable again.
func (g *Game) Undo() error {
	if len(g.history) < 2 {
		return ErrNothingToUndo
	}
	g.over = false
	g.winner = board.Empty
	g.winCells = nil
	for i := 0; i < 2; i++ {
		m := g.history[len(g.history)-1]
		g.history = g.history[:len(g.history)-1]
		g.board.Remove(m.X, m.Y)
		g.players[seatIndex(m.Color)].moves--
	}
	g.onturn = board.Black
	return nil
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (move.Move, bool) {
	return g.history.Last()
}

// Copy returns a deep copy that shares nothing with g.
func (g *Game) Copy() *Game {
	cp := &Game{
		id:       g.id,
		board:    g.board.Copy(),
		history:  g.history.Copy(),
		onturn:   g.onturn,
		over:     g.over,
		winner:   g.winner,
		winCells: append([][2]int(nil), g.winCells...),
	}
	for i, p := range g.players {
		ps := *p
		cp.players[i] = &ps
	}
	return cp
}

func (g *Game) ID() string {
	return g.id
}

// SetID is used when restoring a stored game.
func (g *Game) SetID(id string) {
	g.id = id
}

// Board returns the live board. Mutating it bypasses the rules.
func (g *Game) Board() *board.Board {
	return g.board
}

// History returns a copy of the moves played so far.
func (g *Game) History() move.History {
	return g.history.Copy()
}

func (g *Game) NumMoves() int {
	return len(g.history)
}

func (g *Game) PlayerOnTurn() board.Color {
	return g.onturn
}

func (g *Game) Over() bool {
	return g.over
}

// Winner is Empty while the game is in progress and after a draw.
func (g *Game) Winner() board.Color {
	return g.winner
}

// WinningCells are the stones of the winning line, starting with the
// stone that completed it.
func (g *Game) WinningCells() [][2]int {
	return g.winCells
}

// Player returns the player holding color c.
func (g *Game) Player(c board.Color) PlayerInfo {
	return g.players[seatIndex(c)].PlayerInfo
}

// NickOnTurn is the nickname of the player to move.
func (g *Game) NickOnTurn() string {
	return g.players[seatIndex(g.onturn)].Nickname
}
