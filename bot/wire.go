package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
)

// MoveRequest asks the bot for a move. Board holds one string per row x,
// written with the characters X, O and '.'; when it is omitted the
// position is rebuilt from History. When Color is Empty the side to move
// is worked out from the stone count.
type MoveRequest struct {
	GameID  string       `json:"game_id,omitempty"`
	Size    int          `json:"size"`
	Board   []string     `json:"board,omitempty"`
	History move.History `json:"history"`
	Color   board.Color  `json:"color"`
}

// MoveResponse carries either a move or an error message.
type MoveResponse struct {
	GameID string `json:"game_id,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Coords string `json:"coords,omitempty"`
	Error  string `json:"error,omitempty"`
}

// LambdaEvent is the payload of the lambda handler. When ReplyChannel is
// set the response is also published there over NATS.
type LambdaEvent struct {
	MoveRequest
	ReplyChannel string `json:"reply_channel,omitempty"`
}

var (
	ErrEmptyRequest = errors.New("request has neither a board nor a history")
	ErrBoardSize    = errors.New("board size out of range")
)

// MakeRequest builds a request for the player on turn in g.
func MakeRequest(g *game.Game) MoveRequest {
	return MoveRequest{
		GameID:  g.ID(),
		Size:    g.Board().Dim(),
		Board:   plainRows(g.Board()),
		History: g.History(),
		Color:   g.PlayerOnTurn(),
	}
}

// position decodes the request into the arguments of a search.
func (req *MoveRequest) position() (*board.Board, move.History, board.Color, error) {
	var b *board.Board
	var err error
	if req.Size > board.MaxDim || len(req.Board) > board.MaxDim {
		return nil, nil, board.Empty, fmt.Errorf("%w: at most %d", ErrBoardSize, board.MaxDim)
	}
	switch {
	case len(req.Board) > 0:
		if req.Size != 0 && req.Size != len(req.Board) {
			return nil, nil, board.Empty, fmt.Errorf("board has %d rows but size is %d", len(req.Board), req.Size)
		}
		b = board.MakeBoard(len(req.Board))
		if err = b.SetFromPlaintext(strings.Join(req.Board, "\n")); err != nil {
			return nil, nil, board.Empty, err
		}
	case req.Size > 0:
		b, err = req.History.Apply(req.Size)
		if err != nil {
			return nil, nil, board.Empty, err
		}
	default:
		return nil, nil, board.Empty, ErrEmptyRequest
	}
	c := req.Color
	if c == board.Empty {
		c = sideToMove(b)
	}
	return b, req.History, c, nil
}

func plainRows(b *board.Board) []string {
	rows := make([]string, b.Dim())
	var sb strings.Builder
	for x, row := range b.Rows() {
		sb.Reset()
		for _, c := range row {
			sb.WriteString(c.DisplayString())
		}
		rows[x] = sb.String()
	}
	return rows
}

// sideToMove assumes black moved first.
func sideToMove(b *board.Board) board.Color {
	var black, white int
	for _, row := range b.Rows() {
		for _, c := range row {
			switch c {
			case board.Black:
				black++
			case board.White:
				white++
			}
		}
	}
	if black > white {
		return board.White
	}
	return board.Black
}

func moveFromResponse(resp *MoveResponse, c board.Color) (move.Move, error) {
	if resp.Error != "" {
		return move.Move{}, errors.New("bot returned: " + resp.Error)
	}
	return move.NewMove(resp.X, resp.Y, c), nil
}
