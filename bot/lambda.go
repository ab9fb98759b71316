package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
)

// LambdaInvoker is the part of the lambda API the client needs.
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaClient asks a deployed bot function for moves.
type LambdaClient struct {
	api      LambdaInvoker
	function string
}

// NewLambdaClient uses the default AWS credential chain.
func NewLambdaClient(ctx context.Context, function string) (*LambdaClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewLambdaClientWithAPI(lambda.NewFromConfig(cfg), function), nil
}

func NewLambdaClientWithAPI(api LambdaInvoker, function string) *LambdaClient {
	return &LambdaClient{api: api, function: function}
}

func (c *LambdaClient) RequestMove(ctx context.Context, g *game.Game) (move.Move, error) {
	payload, err := json.Marshal(LambdaEvent{MoveRequest: MakeRequest(g)})
	if err != nil {
		return move.Move{}, err
	}
	out, err := c.api.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(c.function),
		Payload:      payload,
	})
	if err != nil {
		return move.Move{}, err
	}
	if out.FunctionError != nil {
		return move.Move{}, fmt.Errorf("lambda %s failed: %s: %s", c.function,
			aws.ToString(out.FunctionError), string(out.Payload))
	}
	resp := MoveResponse{}
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return move.Move{}, err
	}
	return moveFromResponse(&resp, g.PlayerOnTurn())
}

// HandleLambdaEvent computes the move for a lambda invocation and, when
// the event names a reply channel, publishes the response there too.
func (bot *Bot) HandleLambdaEvent(ctx context.Context, nc Requester, evt LambdaEvent) (*MoveResponse, error) {
	logger := log.With().Str("gameID", evt.GameID).Logger()
	resp := bot.Respond(&evt.MoveRequest)
	if evt.ReplyChannel == "" || nc == nil {
		return resp, nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("move-sending-via-nats")
	err = retry.Do(
		func() error {
			// We're just waiting for an acknowledgement. The actual
			// data doesn't matter.
			_, err := nc.Request(evt.ReplyChannel, data, 3*time.Second)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(DefaultAttempts),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			logger.Err(err).Uint("n", n).Msg("did-not-receive-ack-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		logger.Err(err).Msg("bot-move-failed")
	}
	return resp, nil
}
