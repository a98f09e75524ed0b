package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"svw.info/birthdayos/internal/chime"
	"svw.info/birthdayos/internal/collection"
	"svw.info/birthdayos/internal/config"
	"svw.info/birthdayos/internal/generator"
	"svw.info/birthdayos/internal/hint"
	"svw.info/birthdayos/internal/infrastructure/storage"
	"svw.info/birthdayos/internal/ports"
	"svw.info/birthdayos/internal/usecase"
	"svw.info/birthdayos/internal/validator"
)

// app is the wired object graph behind every subcommand.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	uc     *usecase.Service
	closer io.Closer
}

func (a *app) Close() error { return a.closer.Close() }

// openApp loads config, storage, and the service. withSound asks for the
// audio device; a failure there degrades to silence.
func openApp(cmd *cobra.Command, opts *rootOptions, withSound bool) (*app, error) {
	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	lvl, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	kv, closer, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	seed := cfg.Grid.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var snd ports.Chime = chime.Silent{}
	if withSound && cfg.Sound {
		if sp, err := chime.NewSpeaker(logger); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			snd = sp
		}
	}

	v := validator.New()
	st := collection.New(kv, v, logger)
	uc := usecase.NewService(st, v, usecase.Options{
		Size:    cfg.Grid.Size,
		Candles: cfg.Grid.Candles,
		Random:  generator.NewRandom(seed),
		Hinter:  hint.NewSingles(),
		Chime:   snd,
		Logger:  logger,
	})
	logger.Debug("app ready", "driver", cfg.Storage.Driver, "namespace", cfg.Storage.Namespace)
	return &app{cfg: cfg, log: logger, uc: uc, closer: closer}, nil
}

// withApp opens the app, runs fn, and closes it again.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(*app) error) (err error) {
	a, err := openApp(cmd, opts, false)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return fn(a)
}
