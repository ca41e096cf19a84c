// Package main is the entry point for Lantern.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/samdwyer/lantern/internal/config"
	"github.com/samdwyer/lantern/internal/game"
	"github.com/samdwyer/lantern/internal/gamedata"
	"github.com/samdwyer/lantern/internal/logging"
	"github.com/samdwyer/lantern/internal/save"
	"github.com/samdwyer/lantern/internal/telemetry"
	"github.com/samdwyer/lantern/internal/ui"
	"github.com/samdwyer/lantern/internal/world"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lantern: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// also loads .env
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()

	if cfg.Telemetry.Tracing {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.TracingOptions(version))
		if err != nil {
			// Continue without tracing - the game still works
			log.Warn("telemetry setup failed", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	metrics := telemetry.NewMetrics("lantern")
	if cfg.Telemetry.MetricsAddr != "" {
		srv := metrics.StartServer(cfg.Telemetry.MetricsAddr, log)
		defer srv.Close()
		log.Info("serving metrics", zap.String("addr", cfg.Telemetry.MetricsAddr))
	}

	store, err := save.Open(cfg.SavePath, log)
	if err != nil {
		return err
	}
	defer store.Close()

	palette, err := gamedata.LoadPalette()
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	g := game.New(cfg, log, store, screen, ui.NewRenderer(screen, palette),
		world.WithLogger(log),
		world.WithMetrics(metrics),
	)

	log.Info("starting",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int64("seed", cfg.Seed),
		zap.String("version", version),
	)
	if err := g.Run(ctx); err != nil {
		log.Error("game error", zap.Error(err))
		return err
	}
	return nil
}
