package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/bot"
	"github.com/domino14/gomoku/config"
)

var cfg *config.Config
var nc *nats.Conn
var moveBot *bot.Bot

const HardTimeLimit = 180 * time.Second // max time per move

func HandleRequest(ctx context.Context, evt bot.LambdaEvent) (*bot.MoveResponse, error) {
	if moveBot == nil {
		b, err := bot.NewBot(cfg)
		if err != nil {
			return nil, err
		}
		moveBot = b
	}
	ctx, cancel := context.WithTimeout(ctx, HardTimeLimit)
	defer cancel()

	var requester bot.Requester
	if nc != nil {
		requester = nc
	}
	resp, err := moveBot.HandleLambdaEvent(ctx, requester, evt)
	if err != nil {
		return nil, err
	}
	log.Info().Str("gameID", evt.GameID).Str("coords", resp.Coords).
		Str("error", resp.Error).Msg("exiting-fn")
	return resp, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg = &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading-config")
	}
	log.Info().Str("config", cfg.SanitizedSettings()).Msg("loaded-config")
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	nc, err = nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		// Replies over NATS are optional; the move is still returned.
		log.Err(err).Msg("nats-connect-failed")
		nc = nil
	}

	lambda.Start(HandleRequest)
}
