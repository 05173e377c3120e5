// Command gameserver serves a console over the agent's HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tatianab/pokemon-agent/internal/agent"
	"github.com/tatianab/pokemon-agent/internal/config"
	"github.com/tatianab/pokemon-agent/internal/console"
	"github.com/tatianab/pokemon-agent/internal/gameserver"
	"github.com/tatianab/pokemon-agent/internal/memory"
	"github.com/tatianab/pokemon-agent/internal/telemetry"
)

func main() {
	log.SetPrefix("[GAMESERVER] ")

	cfg, err := config.ParseServerConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error loading config: %v", err)
	}

	ram := console.NewRAM()
	if cfg.RAMDump != "" {
		if ram, err = console.LoadDump(cfg.RAMDump); err != nil {
			config.Exitf("Error loading RAM dump: %v", err)
		}
	}
	if cfg.ScreenPath != "" {
		if err := ram.LoadScreen(cfg.ScreenPath); err != nil {
			config.Exitf("Error loading screen: %v", err)
		}
	}
	layout := memory.RedBlue
	if cfg.LayoutPath != "" {
		if layout, err = memory.LoadLayout(cfg.LayoutPath); err != nil {
			config.Exitf("Error loading layout: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "pokemon-gameserver", cfg.OTelEndpoint)
	if err != nil {
		config.Exitf("Error setting up telemetry: %v", err)
	}

	srv := gameserver.New(agent.NewLocal(ram, layout, log.Default()), log.Default())
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Hub().Close()
		return errors.Join(httpServer.Shutdown(sctx), shutdown(sctx))
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("gameserver: %v", err)
	}
}
