package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/pokemon-agent/internal/app"
	"github.com/tatianab/pokemon-agent/internal/config"
	"github.com/tatianab/pokemon-agent/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The console owns the terminal, so log lines go to a file.
	f, err := tea.LogToFile("pokemon-agent.log", "[AGENT] ")
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	a, err := app.New(ctx, *cfg, log.Default(), nil)
	if err != nil {
		fmt.Printf("Error creating agent: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()
	log.Printf("fallback seed %d", a.Seed)

	if err := tui.Run(a, cfg.TickInterval); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
