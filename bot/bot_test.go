package bot

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/matryer/is"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newTestBot(t *testing.T) *Bot {
	b, err := NewBot(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func gameAfter(t *testing.T, coords ...string) *game.Game {
	g, err := game.NewGame(board.DefaultDim, []game.PlayerInfo{{Nickname: "a"}, {Nickname: "b"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range coords {
		x, y, err := move.FromBoardGameCoords(c, board.DefaultDim)
		if err != nil {
			t.Fatal(err)
		}
		if err := g.PlayMove(x, y, g.PlayerOnTurn()); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func decode(t *testing.T, data []byte) MoveResponse {
	resp := MoveResponse{}
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandleBoardRequest(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)
	g := gameAfter(t, "H8")
	data, err := json.Marshal(MakeRequest(g))
	is.NoErr(err)

	resp := decode(t, bot.Handle(data))
	is.Equal(resp.Error, "")
	is.Equal(resp.GameID, g.ID())
	is.Equal(resp.X, 8)
	is.Equal(resp.Y, 7)
	is.Equal(resp.Coords, "H9")
}

func TestHandleHistoryOnly(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)
	req := MoveRequest{
		Size:    board.DefaultDim,
		History: move.History{move.NewMove(7, 7, board.Black)},
	}
	m, err := bot.ChooseMove(&req)
	is.NoErr(err)
	is.Equal(m, move.NewMove(8, 7, board.White))
}

func TestHandleBlocksFour(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)
	// Black has four in a row on row 8 and white must block either end.
	g := gameAfter(t, "D8", "A1", "E8", "A3", "F8", "A5", "G8")
	resp := bot.Respond(&MoveRequest{
		Size:    g.Board().Dim(),
		Board:   plainRows(g.Board()),
		History: g.History(),
	})
	is.Equal(resp.Error, "")
	is.Equal(resp.X, 7)
	is.True(resp.Y == 2 || resp.Y == 7)
}

func TestHandleErrors(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)

	resp := decode(t, bot.Handle([]byte("{not json")))
	is.True(strings.HasPrefix(resp.Error, "could not parse request"))

	resp = decode(t, bot.Handle([]byte(`{"history":[]}`)))
	is.True(strings.Contains(resp.Error, ErrEmptyRequest.Error()))

	resp = decode(t, bot.Handle([]byte(`{"size":5,"board":["...","...","..."]}`)))
	is.True(strings.Contains(resp.Error, "board has 3 rows but size"))

	resp = decode(t, bot.Handle([]byte(`{"size":3000000000,"history":[]}`)))
	is.True(strings.Contains(resp.Error, ErrBoardSize.Error()))

	rows := make([]string, board.MaxDim+1)
	for i := range rows {
		rows[i] = strings.Repeat(".", board.MaxDim+1)
	}
	resp = *bot.Respond(&MoveRequest{Board: rows})
	is.True(strings.Contains(resp.Error, ErrBoardSize.Error()))

	resp = *bot.Respond(&MoveRequest{Board: []string{".....", ".....", "..Z..", ".....", "....."}})
	is.True(resp.Error != "")
}

func TestSideToMove(t *testing.T) {
	is := is.New(t)
	b := board.MakeBoard(board.DefaultDim)
	is.Equal(sideToMove(b), board.Black)
	b.Set(7, 7, board.Black)
	is.Equal(sideToMove(b), board.White)
	b.Set(7, 8, board.White)
	is.Equal(sideToMove(b), board.Black)
}

// loopback answers NATS requests with a bot in process.
type loopback struct {
	bot      *Bot
	failures int
	calls    int
	subjects []string
}

func (l *loopback) Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error) {
	l.calls++
	l.subjects = append(l.subjects, subj)
	if l.calls <= l.failures {
		return nil, nats.ErrTimeout
	}
	return &nats.Msg{Subject: subj, Data: l.bot.Handle(data)}, nil
}

func TestClientRetries(t *testing.T) {
	is := is.New(t)
	lb := &loopback{bot: newTestBot(t), failures: 2}
	c := NewClient(lb, DefaultChannel)
	c.SetRetry(3, time.Millisecond)

	g := gameAfter(t, "H8")
	m, err := c.RequestMove(context.Background(), g)
	is.NoErr(err)
	is.Equal(lb.calls, 3)
	is.Equal(lb.subjects[0], DefaultChannel)
	is.Equal(m, move.NewMove(8, 7, board.White))
}

func TestClientGivesUp(t *testing.T) {
	is := is.New(t)
	lb := &loopback{bot: newTestBot(t), failures: 10}
	c := NewClient(lb, DefaultChannel)
	c.SetRetry(2, time.Millisecond)
	_, err := c.RequestMove(context.Background(), gameAfter(t, "H8"))
	is.True(err != nil)
	is.Equal(lb.calls, 2)
}

type refusing struct {
	calls int
}

func (r *refusing) Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error) {
	r.calls++
	return &nats.Msg{Subject: subj, Data: []byte(`{"error":"no legal moves"}`)}, nil
}

func TestClientDoesNotRetryBotErrors(t *testing.T) {
	is := is.New(t)
	r := &refusing{}
	c := NewClient(r, DefaultChannel)
	c.SetRetry(3, time.Millisecond)
	_, err := c.RequestMove(context.Background(), gameAfter(t, "H8"))
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "no legal moves"))
	is.Equal(r.calls, 1)
}

type fakeLambda struct {
	bot      *Bot
	function string
	fail     bool
}

func (f *fakeLambda) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.function = aws.ToString(params.FunctionName)
	if f.fail {
		return &lambda.InvokeOutput{
			FunctionError: aws.String("Unhandled"),
			Payload:       []byte(`{"errorMessage":"boom"}`),
		}, nil
	}
	return &lambda.InvokeOutput{StatusCode: 200, Payload: f.bot.Handle(params.Payload)}, nil
}

func TestLambdaClient(t *testing.T) {
	is := is.New(t)
	fl := &fakeLambda{bot: newTestBot(t)}
	c := NewLambdaClientWithAPI(fl, "gomoku-bot")
	m, err := c.RequestMove(context.Background(), gameAfter(t, "H8"))
	is.NoErr(err)
	is.Equal(fl.function, "gomoku-bot")
	is.Equal(m, move.NewMove(8, 7, board.White))

	fl.fail = true
	_, err = c.RequestMove(context.Background(), gameAfter(t, "H8"))
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "boom"))
}

func TestHandleLambdaEventReplies(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(t)
	ack := &loopback{bot: bot}
	g := gameAfter(t, "H8")
	evt := LambdaEvent{MoveRequest: MakeRequest(g), ReplyChannel: "game.reply"}
	resp, err := bot.HandleLambdaEvent(context.Background(), ack, evt)
	is.NoErr(err)
	is.Equal(resp.Coords, "H9")
	is.Equal(ack.subjects, []string{"game.reply"})

	resp, err = bot.HandleLambdaEvent(context.Background(), nil, evt)
	is.NoErr(err)
	is.Equal(resp.X, 8)
}
