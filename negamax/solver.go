// Package negamax chooses the engine's move: an opening rule, a scan for
// immediate wins and must-blocks, then a fixed-depth negamax search with
// alpha-beta pruning over the ordered candidate points.
package negamax

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/equity"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
	"github.com/domino14/gomoku/shape"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
(* Initial call for Player A's root node *)
negamax(rootNode, depth, −∞, +∞, 1)
**/

var (
	ErrBoardSize     = errors.New("board does not have the configured size")
	ErrInvalidColor  = errors.New("engine color must be black or white")
	ErrNoCandidates  = errors.New("no candidate moves on a non-empty board")
	ErrBoardModified = errors.New("board was not restored after the search")
)

// Settings is the fixed search budget and evaluation table.
type Settings struct {
	BoardSize int
	// SearchDepth is used once the game has OpeningThreshold moves.
	SearchDepth      int
	OpeningDepth     int
	OpeningThreshold int
	// BreadthDeep caps the candidates searched at nodes with at least
	// BreadthDeepMinDepth plies remaining; BreadthShallow applies below.
	BreadthDeep         int
	BreadthShallow      int
	BreadthDeepMinDepth int
	Table               shape.Table
}

func DefaultSettings() Settings {
	return Settings{
		BoardSize:           board.DefaultDim,
		SearchDepth:         4,
		OpeningDepth:        2,
		OpeningThreshold:    6,
		BreadthDeep:         12,
		BreadthShallow:      15,
		BreadthDeepMinDepth: 3,
		Table:               shape.DefaultTable(),
	}
}

func (s Settings) validate() error {
	if s.BoardSize < board.WinLength {
		return fmt.Errorf("board size %d is smaller than a winning line", s.BoardSize)
	}
	if s.SearchDepth < 1 || s.OpeningDepth < 1 {
		return errors.New("search depths must be at least 1")
	}
	if s.BreadthDeep < 1 || s.BreadthShallow < 1 {
		return errors.New("breadth caps must be at least 1")
	}
	return s.Table.Validate()
}

// PVLine is the line of play the search expects after the chosen move.
type PVLine struct {
	Moves []move.Move
	score float64
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = pvLine.Moves[:0]
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(m move.Move, newPVLine PVLine, score float64) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

func (pvLine PVLine) Score() float64 {
	return pvLine.score
}

func (pvLine PVLine) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %.1f\n", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, m.ShortDescription())
	}
	return sb.String()
}

// NLBString is String without the line breaks.
func (pvLine PVLine) NLBString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %.1f; ", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&sb, "%d: %s; ", i+1, m.ShortDescription())
	}
	return sb.String()
}

// Reason says which stage of ChooseMove produced the move.
type Reason string

const (
	ReasonOpening Reason = "opening"
	ReasonWin     Reason = "win"
	ReasonBlock   Reason = "block"
	ReasonSearch  Reason = "search"
)

// Solver picks moves for one color at a time. It is not safe for
// concurrent use: it places and removes stones on the board it is given,
// and keeps per-search state.
type Solver struct {
	settings Settings
	gen      *movegen.Generator
	scorer   *equity.Scorer

	engine    board.Color
	rootDepth int

	principalVariation PVLine
	bestScore          float64
	lastReason         Reason
	nodes              atomic.Uint64
}

func NewSolver(settings Settings) (*Solver, error) {
	s := &Solver{}
	if err := s.Init(settings); err != nil {
		return nil, err
	}
	return s, nil
}

// Init initializes the solver
func (s *Solver) Init(settings Settings) error {
	if err := settings.validate(); err != nil {
		return err
	}
	s.settings = settings
	s.gen = movegen.NewGenerator(movegen.DefaultRadius)
	s.scorer = equity.NewScorer(settings.Table, board.Black)
	return nil
}

func (s *Solver) Settings() Settings {
	return s.settings
}

// Nodes is the number of positions visited by the last search.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Variation is the principal variation of the last search. It is empty
// when the move came from the opening rule or the forced-move check.
func (s *Solver) Variation() PVLine {
	return s.principalVariation
}

// LastReason is the stage that produced the last move.
func (s *Solver) LastReason() Reason {
	return s.lastReason
}

// DepthFor is the search depth for a game with n moves played.
func (s *Solver) DepthFor(n int) int {
	if n < s.settings.OpeningThreshold {
		return s.settings.OpeningDepth
	}
	return s.settings.SearchDepth
}

func (s *Solver) breadth(depth int) int {
	if depth >= s.settings.BreadthDeepMinDepth {
		return s.settings.BreadthDeep
	}
	return s.settings.BreadthShallow
}

func (s *Solver) setEngine(c board.Color) {
	if s.engine != c {
		s.engine = c
		s.scorer = equity.NewScorer(s.settings.Table, c)
	}
}

func (s *Solver) checkArgs(b *board.Board, c board.Color) error {
	if b.Dim() != s.settings.BoardSize {
		return fmt.Errorf("%w: got %d, want %d", ErrBoardSize, b.Dim(), s.settings.BoardSize)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidColor, c)
	}
	return nil
}

// ChooseMove returns the move color c should play on b. The history is
// only consulted for its length. The board is modified during the search
// and restored before ChooseMove returns.
func (s *Solver) ChooseMove(b *board.Board, h move.History, c board.Color) (move.Move, error) {
	if err := s.checkArgs(b, c); err != nil {
		return move.Move{}, err
	}
	s.setEngine(c)
	s.nodes.Store(0)
	s.principalVariation.Clear()
	s.bestScore = 0

	if m, ok := s.openingMove(b, h, c); ok {
		s.lastReason = ReasonOpening
		log.Debug().Str("move", m.Coords()).Msg("opening-move")
		return m, nil
	}
	if b.NumStones() == 0 {
		// A long history over an empty board still opens in the center.
		s.lastReason = ReasonOpening
		ctr := b.Center()
		return move.NewMove(ctr, ctr, c), nil
	}

	before := b.Hash()
	tstart := time.Now()

	m, reason, err := s.chooseMove(b, h, c)
	if err != nil {
		return move.Move{}, err
	}
	s.lastReason = reason
	if b.Hash() != before {
		return move.Move{}, ErrBoardModified
	}

	log.Debug().
		Uint64("nodes", s.nodes.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Float64("score", s.bestScore).
		Str("reason", string(reason)).
		Str("move", m.Coords()).
		Msg("choose-move-returning")
	return m, nil
}

func (s *Solver) chooseMove(b *board.Board, h move.History, c board.Color) (move.Move, Reason, error) {
	cands := s.gen.Generate(b)
	if len(cands) == 0 {
		return move.Move{}, "", ErrNoCandidates
	}
	if m, ok := forcedMove(b, cands, c); ok {
		return m, ReasonWin, nil
	}
	if m, ok := forcedMove(b, cands, c.Opponent()); ok {
		m.Color = c
		return m, ReasonBlock, nil
	}

	depth := s.DepthFor(len(h))
	log.Debug().Int("depth", depth).Int("candidates", len(cands)).
		Str("color", c.String()).Msg("search-config")
	m := s.rootSearch(b, cands, depth, c)
	return m, ReasonSearch, nil
}

// openingMove covers the engine's first move: the center, or the point
// just below it when the center is taken.
func (s *Solver) openingMove(b *board.Board, h move.History, c board.Color) (move.Move, bool) {
	if len(h) > 1 {
		return move.Move{}, false
	}
	ctr := b.Center()
	if b.IsEmpty(ctr, ctr) {
		return move.NewMove(ctr, ctr, c), true
	}
	if b.IsEmpty(ctr+1, ctr) {
		return move.NewMove(ctr+1, ctr, c), true
	}
	return move.Move{}, false
}

// forcedMove returns the first candidate where a stone of color c
// completes five.
func forcedMove(b *board.Board, cands []movegen.Candidate, c board.Color) (move.Move, bool) {
	for _, cand := range cands {
		b.Set(cand.X, cand.Y, c)
		five := b.IsFive(cand.X, cand.Y)
		b.Remove(cand.X, cand.Y)
		if five {
			return move.NewMove(cand.X, cand.Y, c), true
		}
	}
	return move.Move{}, false
}

func (s *Solver) rootSearch(b *board.Board, cands []movegen.Candidate, depth int, c board.Color) move.Move {
	s.rootDepth = depth
	movegen.Order(cands, b, c, s.scorer)

	best := math.Inf(-1)
	bestMove := move.NewMove(cands[0].X, cands[0].Y, c)
	pv := PVLine{}
	for _, cand := range cands {
		m := move.NewMove(cand.X, cand.Y, c)
		childPV := PVLine{}
		b.Set(cand.X, cand.Y, c)
		s.nodes.Add(1)
		score := -s.negamax(b, depth-1, math.Inf(-1), -best, c.Opponent(), &childPV)
		b.Remove(cand.X, cand.Y)
		if score > best {
			best = score
			bestMove = m
			pv.Update(m, childPV, score)
		}
	}
	s.bestScore = best
	s.principalVariation = pv
	return bestMove
}
