package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/bot"
	"github.com/domino14/wordlebits/config"
	"github.com/domino14/wordlebits/dataloaders"
)

const connectAttempts = 10

func main() {
	// Determine the directory of the executable. We will use this
	// directory to find the data files if an absolute path is not
	// provided for these!
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
	log.Info().Str("data-path", cfg.GetString(config.ConfigDataPath)).Msg("adjusted paths")

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	nc, err := bot.Connect(ctx, cfg.GetString(config.ConfigNatsURL), connectAttempts)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-connect")
	}
	if _, err := bot.Serve(nc, cfg.GetString(config.ConfigBotSubject), bot.NewBot(root)); err != nil {
		log.Fatal().Err(err).Msg("could-not-subscribe")
	}

	<-ctx.Done()
	// We received an interrupt signal, shut down.
	log.Info().Msg("got quit signal...")
	if err := nc.Drain(); err != nil {
		log.Err(err).Msg("drain-failed")
	}
	log.Info().Msg("server gracefully shutting down")
}
