// Package bot serves engine moves over NATS and requests them from a
// running bot or a deployed lambda function.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/negamax"
)

const DefaultChannel = "gomoku.bot"

type Bot struct {
	config   *config.Config
	settings negamax.Settings

	mu sync.Mutex
	// One solver per board size seen.
	solvers map[int]*negamax.Solver
}

func NewBot(cfg *config.Config) (*Bot, error) {
	settings, err := negamax.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Bot{config: cfg, settings: settings, solvers: map[int]*negamax.Solver{}}, nil
}

func errorResponse(gameID, message string, err error) *MoveResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &MoveResponse{GameID: gameID, Error: msg}
}

func (bot *Bot) solver(size int) (*negamax.Solver, error) {
	if s, ok := bot.solvers[size]; ok {
		return s, nil
	}
	settings := bot.settings
	settings.BoardSize = size
	s, err := negamax.NewSolver(settings)
	if err != nil {
		return nil, err
	}
	bot.solvers[size] = s
	return s, nil
}

// ChooseMove searches the requested position.
func (bot *Bot) ChooseMove(req *MoveRequest) (move.Move, error) {
	b, h, c, err := req.position()
	if err != nil {
		return move.Move{}, err
	}
	bot.mu.Lock()
	defer bot.mu.Unlock()
	s, err := bot.solver(b.Dim())
	if err != nil {
		return move.Move{}, err
	}
	m, err := s.ChooseMove(b, h, c)
	if err != nil {
		return move.Move{}, err
	}
	log.Info().Str("game", req.GameID).Str("move", m.ShortDescription()).
		Str("reason", string(s.LastReason())).Uint64("nodes", s.Nodes()).Msg("generated-move")
	return m, nil
}

// Respond answers a decoded request. Failures are reported in the
// response.
func (bot *Bot) Respond(req *MoveRequest) *MoveResponse {
	m, err := bot.ChooseMove(req)
	if err != nil {
		return errorResponse(req.GameID, "could not choose a move", err)
	}
	return &MoveResponse{GameID: req.GameID, X: m.X, Y: m.Y, Coords: m.Coords()}
}

func (bot *Bot) handle(data []byte) *MoveResponse {
	req := MoveRequest{}
	if err := json.Unmarshal(data, &req); err != nil {
		return errorResponse("", "could not parse request", err)
	}
	return bot.Respond(&req)
}

// Handle answers a JSON encoded MoveRequest with a JSON MoveResponse.
func (bot *Bot) Handle(data []byte) []byte {
	resp := bot.handle(data)
	out, err := json.Marshal(resp)
	if err != nil {
		// Should never happen; send something the client can read.
		return []byte(`{"error":"could not encode response"}`)
	}
	return out
}

// Main answers requests on channel until ctx is done.
func Main(ctx context.Context, channel string, bot *Bot) error {
	nc, err := nats.Connect(bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()
	_, err = nc.Subscribe(channel, func(m *nats.Msg) {
		log.Debug().Int("bytes", len(m.Data)).Msg("recv")
		if err := m.Respond(bot.Handle(m.Data)); err != nil {
			log.Err(err).Msg("respond")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Str("channel", channel).Msg("listening")
	<-ctx.Done()
	return nc.Drain()
}
