package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/bot"
	"github.com/domino14/wordlebits/config"
	"github.com/domino14/wordlebits/dataloaders"
)

var b *bot.Bot
var nc *nats.Conn

// HardTimeLimit bounds a single request.
const HardTimeLimit = 60 * time.Second

func HandleRequest(ctx context.Context, evt bot.LambdaEvent) (bot.Response, error) {
	logger := log.With().Str("id", evt.ID).Logger()

	ctx, cancel := context.WithTimeout(ctx, HardTimeLimit)
	defer cancel()
	resp, err := bot.Local{Bot: b}.Suggest(ctx, evt.Request)
	if err != nil {
		return resp, err
	}
	logger.Info().Str("guess", resp.Guess).Int("remaining", resp.Remaining).Msg("suggested")

	if evt.ReplyChannel != "" && nc != nil {
		data, err := json.Marshal(resp)
		if err != nil {
			return resp, err
		}
		logger.Info().Msg("suggestion-sending-via-nats")
		err = retry.Do(
			func() error {
				// We're just waiting for an acknowledgement. The actual
				// data doesn't matter.
				_, err := nc.Request(evt.ReplyChannel, data, 3*time.Second)
				return err
			},
			retry.Context(ctx),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).
					Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			logger.Err(err).Msg("reply-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	return resp, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if _, err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	root, err := dataloaders.LoadSolver(cfg, cfg.WordsPath(), cfg.AnswersPath(),
		cfg.GetInt(config.ConfigWordLength))
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-load-word-lists")
	}
	b = bot.NewBot(root)

	nc, err = bot.Connect(context.Background(), cfg.GetString(config.ConfigNatsURL), 3)
	if err != nil {
		// Suggestions are still returned from the function itself.
		log.Err(err).Msg("nats-unavailable")
	}

	lambda.Start(HandleRequest)
}
