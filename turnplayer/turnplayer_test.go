package turnplayer

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
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

var players = []game.PlayerInfo{
	{Nickname: "human"},
	{Nickname: "bot", Bot: true},
}

func newBot(t *testing.T) *BotTurnPlayer {
	opts := &GameOptions{}
	p, err := NewBotTurnPlayer(config.DefaultConfig(), opts, players)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseAndPlay(t *testing.T) {
	is := is.New(t)
	p := newBot(t)
	m, err := p.PlayCoords("H8")
	is.NoErr(err)
	is.Equal(m, move.NewMove(7, 7, board.Black))
	m, err = p.PlayCoords("7,8")
	is.NoErr(err)
	is.Equal(m, move.NewMove(7, 8, board.White))
	_, err = p.PlayCoords("Z99")
	is.True(err != nil)
	is.True(p.IsPlaying())
}

func TestThinkOpening(t *testing.T) {
	is := is.New(t)
	p := newBot(t)
	_, err := p.PlayCoords("H8")
	is.NoErr(err)

	task := p.Think(context.Background())
	m, err := task.Wait(context.Background())
	is.NoErr(err)
	is.Equal(task.Status(), Done)
	is.Equal(m, move.NewMove(8, 7, board.White))
	// Thinking does not touch the game.
	is.Equal(p.NumMoves(), 1)
}

func TestPlayBest(t *testing.T) {
	is := is.New(t)
	p := newBot(t)
	for _, c := range []string{"H8", "A1", "H9", "A2", "H10", "B15", "H11", "O15"} {
		_, err := p.PlayCoords(c)
		is.NoErr(err)
	}
	// Black, on turn, has an open four down column H and completes it.
	m, err := p.PlayBest(context.Background())
	is.NoErr(err)
	is.Equal(m.Color, board.Black)
	is.Equal(m.Y, 7)
	is.True(m.X == 6 || m.X == 11)
	is.True(p.Over())
	is.Equal(p.Winner(), board.Black)
}

func TestThinkCancelledBeforeStart(t *testing.T) {
	is := is.New(t)
	p := newBot(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	task := p.Think(ctx)
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task never finished")
	}
	_, err := task.Wait(context.Background())
	is.True(errors.Is(err, context.Canceled))
	is.Equal(task.Status(), Done)
}

func TestTaskStatusOrder(t *testing.T) {
	is := is.New(t)
	release := make(chan struct{})
	task := startTask(context.Background(), func() (move.Move, error) {
		<-release
		return move.NewMove(7, 7, board.Black), nil
	})
	deadline := time.Now().Add(5 * time.Second)
	for task.Status() != Thinking {
		if time.Now().After(deadline) {
			t.Fatal("task never started thinking")
		}
		time.Sleep(time.Millisecond)
	}
	select {
	case <-task.Done():
		t.Fatal("task finished before its search returned")
	default:
	}
	close(release)
	m, err := task.Wait(context.Background())
	is.NoErr(err)
	is.Equal(m.X, 7)
	is.Equal(task.Status(), Done)
}

func TestThinkAfterGameOver(t *testing.T) {
	is := is.New(t)
	p := newBot(t)
	for _, c := range []string{"A1", "O1", "A2", "O2", "A3", "O3", "A4", "O4", "A5"} {
		_, err := p.PlayCoords(c)
		is.NoErr(err)
	}
	is.True(p.Over())
	_, err := p.Think(context.Background()).Wait(context.Background())
	is.True(errors.Is(err, ErrGameIsOver))
}

func TestGenerateMoves(t *testing.T) {
	is := is.New(t)
	p := newBot(t)
	for _, c := range []string{"H8", "I9", "H9"} {
		_, err := p.PlayCoords(c)
		is.NoErr(err)
	}
	ranked, err := p.GenerateMoves(3)
	is.NoErr(err)
	is.Equal(len(ranked), 3)
	is.Equal(p.NumMoves(), 3)
	for _, r := range ranked {
		is.True(p.Board().IsEmpty(r.Move.X, r.Move.Y))
		is.Equal(r.Move.Color, board.White)
	}
}

func TestGameOptions(t *testing.T) {
	is := is.New(t)
	opts := &GameOptions{}
	is.NoErr(opts.SetBotColor("white"))
	is.Equal(opts.BotColor, board.White)
	is.NoErr(opts.SetBotColor("none"))
	is.Equal(opts.BotColor, board.Empty)
	is.True(opts.SetBotColor("green") != nil)
	is.True(opts.SetBoardSize(3) != nil)
	is.NoErr(opts.SetBoardSize(19))
	opts.SetDefaults(config.DefaultConfig())
	is.Equal(opts.BoardSize, 19)
}
