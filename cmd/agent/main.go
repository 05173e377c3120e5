// Command agent plays the game headless. The loop logs one line per tick.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tatianab/pokemon-agent/internal/app"
	"github.com/tatianab/pokemon-agent/internal/config"
	"github.com/tatianab/pokemon-agent/internal/telemetry"
)

func main() {
	log.SetPrefix("[AGENT] ")

	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "pokemon-agent", cfg.OTelEndpoint)
	if err != nil {
		config.Exitf("Error setting up telemetry: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Printf("warning: telemetry shutdown: %v", err)
		}
	}()

	a, err := app.New(ctx, cfg, log.Default(), nil)
	if err != nil {
		config.Exitf("Error creating agent: %v", err)
	}
	defer a.Close()

	st := a.Manager.Status()
	log.Printf("player=%s pokemon=%s dual=%v seed=%d", st.PlayerEngine, st.PokemonEngine, st.DualMode, a.Seed)

	if err := a.Run(ctx); err != nil {
		log.Printf("agent stopped: %v", err)
	}
	if name, err := a.SaveRun(""); err != nil {
		log.Printf("warning: %v", err)
	} else {
		log.Printf("saved run %s", name)
	}
}
