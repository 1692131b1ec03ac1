package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/hackboard/internal/datasource"
	"github.com/tinytelemetry/hackboard/internal/httpserver"
	"github.com/tinytelemetry/hackboard/internal/logging"
)

func runServer(cfg appConfig) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Console(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader, err := datasource.New(cfg.DataSource, cfg.FetchTimeout)
	if err != nil {
		return err
	}
	doc, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading data source %q: %w", cfg.DataSource, err)
	}

	srv, err := httpserver.NewServer(cfg.Addr, doc)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	log.Info().
		Str("version", version).
		Str("source", cfg.DataSource).
		Str("config", cfg.ConfigPath).
		Int("teams", len(doc.Teams)).
		Msg("hackboard serving")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		return srv.Stop()
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
