package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tatianab/pokemon-agent/internal/agent"
	"github.com/tatianab/pokemon-agent/internal/app"
	"github.com/tatianab/pokemon-agent/internal/config"
)

const maxTurns = 10

func main() {
	ctx := context.Background()
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	a, err := app.New(ctx, cfg, log.Default(), printTurn)
	if err != nil {
		log.Fatalf("Failed to create agent: %v", err)
	}
	defer a.Close()

	fmt.Printf("Engines: %v (seed %d)\n\n", a.Manager.Engines(), a.Seed)
	for turn := 1; turn <= maxTurns; turn++ {
		if _, err := a.Loop.Tick(ctx); err != nil {
			fmt.Printf("Error on turn %d: %v\n", turn, err)
			break
		}
	}

	st := a.Manager.Status()
	fmt.Printf("History: %d entries, player=%s pokemon=%s dual=%v\n", st.HistoryLen, st.PlayerEngine, st.PokemonEngine, st.DualMode)
}

func printTurn(r agent.TickResult) {
	fmt.Printf("--- Turn %d ---\n", r.Tick)
	fmt.Printf("State: %s\n", r.State.Summary())
	fmt.Printf("Action: %s (engine %s, role %s, fallback %v)\n", r.Result.Decision.Action, r.Result.Engine, r.Result.Role, r.Result.Fallback)
	fmt.Printf("Commentary: %s\n\n", r.Result.Decision.Commentary)
}
