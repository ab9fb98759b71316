package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
)

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultAttempts       = 3
)

// Requester is the part of a NATS connection the client needs.
type Requester interface {
	Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error)
}

type Client struct {
	nc       Requester
	channel  string
	timeout  time.Duration
	attempts uint
	delay    time.Duration
}

func NewClient(nc Requester, channel string) *Client {
	return &Client{
		nc:       nc,
		channel:  channel,
		timeout:  DefaultRequestTimeout,
		attempts: DefaultAttempts,
		delay:    100 * time.Millisecond,
	}
}

// Connect dials the configured NATS server.
func Connect(cfg *config.Config) (*Client, *nats.Conn, error) {
	nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		return nil, nil, err
	}
	channel := cfg.GetString(config.ConfigBotChannel)
	if channel == "" {
		channel = DefaultChannel
	}
	return NewClient(nc, channel), nc, nil
}

// SetRetry changes the number of attempts and the base backoff delay.
func (c *Client) SetRetry(attempts uint, delay time.Duration) {
	c.attempts = attempts
	c.delay = delay
}

// RequestMove sends the game to the bot and gets a move back for the
// player on turn. Transport errors are retried; an error reported by the
// bot is not.
func (c *Client) RequestMove(ctx context.Context, g *game.Game) (move.Move, error) {
	data, err := json.Marshal(MakeRequest(g))
	if err != nil {
		return move.Move{}, err
	}
	onturn := g.PlayerOnTurn()
	logger := log.With().Str("game", g.ID()).Logger()

	return retry.DoWithData(
		func() (move.Move, error) {
			res, err := c.nc.Request(c.channel, data, c.timeout)
			if err != nil {
				return move.Move{}, err
			}
			resp := MoveResponse{}
			if err := json.Unmarshal(res.Data, &resp); err != nil {
				return move.Move{}, retry.Unrecoverable(err)
			}
			m, err := moveFromResponse(&resp, onturn)
			if err != nil {
				return move.Move{}, retry.Unrecoverable(err)
			}
			return m, nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return retry.IsRecoverable(err) && !errors.Is(err, context.Canceled)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			logger.Err(err).Uint("n", n).Msg("bot-request-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
}
