// Package app wires configuration into a running agent: engines, arbiter,
// game source, journal and control loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/tatianab/pokemon-agent/internal/agent"
	"github.com/tatianab/pokemon-agent/internal/client"
	"github.com/tatianab/pokemon-agent/internal/config"
	"github.com/tatianab/pokemon-agent/internal/console"
	"github.com/tatianab/pokemon-agent/internal/engine"
	"github.com/tatianab/pokemon-agent/internal/manager"
	"github.com/tatianab/pokemon-agent/internal/memory"
	"github.com/tatianab/pokemon-agent/internal/models"
	"github.com/tatianab/pokemon-agent/internal/random"
	"github.com/tatianab/pokemon-agent/internal/storage/sqlite"
)

// Engine names in the default registry.
const (
	EngineRules        = "rules"
	EngineGemini       = "gemini"
	EngineGeminiVision = "gemini-vision"
)

// App is a fully wired agent.
type App struct {
	Manager *manager.Manager
	Loop    *agent.Loop
	// Seed is the fallback explorer's seed, for reproducing a run.
	Seed uint64

	logger  *log.Logger
	closers []io.Closer

	mu        sync.Mutex
	lastState models.GameState
	observer  agent.Observer
}

// New builds an App from cfg. observer, if not nil, sees every tick.
func New(ctx context.Context, cfg config.Config, logger *log.Logger, observer agent.Observer) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	models.SaveDir = cfg.SaveDir

	rng, seed, err := random.New(cfg.Seed)
	if err != nil {
		return nil, err
	}
	fallback := engine.NewFallback(rng)
	a := &App{Seed: seed, logger: logger, observer: observer}

	reg, closers, err := NewRegistry(ctx, cfg, fallback, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closers...)

	mgr, err := manager.New(reg, fallback, nil, manager.Config{
		PlayerEngine:  cfg.PlayerEngine,
		PokemonEngine: cfg.PokemonEngine,
		DefaultEngine: EngineRules,
		DualMode:      cfg.DualMode,
		DecideTimeout: cfg.DecideTimeout,
	}, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Manager = mgr

	source, sink, err := a.newBoundary(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	opts := []agent.Option{
		agent.WithInterval(cfg.TickInterval),
		agent.WithLogger(logger),
		agent.WithObserver(a.observe),
	}
	if cfg.JournalPath != "" {
		store, err := sqlite.Open(cfg.JournalPath)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("open journal: %w", err)
		}
		a.closers = append(a.closers, store)
		opts = append(opts, agent.WithJournal(store))
	}
	a.Loop = agent.NewLoop(source, sink, mgr, opts...)
	return a, nil
}

// NewRegistry registers the rule engine and, when an API key is configured,
// the Gemini engines. The returned closers release model clients.
func NewRegistry(ctx context.Context, cfg config.Config, fallback *engine.Fallback, logger *log.Logger) (*engine.Registry, []io.Closer, error) {
	reg := engine.NewRegistry()
	if err := reg.Register(EngineRules, engine.NewRules(fallback)); err != nil {
		return nil, nil, err
	}
	if cfg.GeminiAPIKey == "" {
		return reg, nil, nil
	}

	gem, err := engine.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, fmt.Errorf("create gemini client: %w", err)
	}
	closers := []io.Closer{gem}
	for name, e := range map[string]engine.Engine{
		EngineGemini:       engine.NewLLM(gem, fallback, engine.WithLogger(logger)),
		EngineGeminiVision: engine.NewLLM(gem, fallback, engine.WithVision(), engine.WithLogger(logger)),
	} {
		if err := reg.Register(name, e); err != nil {
			_ = gem.Close()
			return nil, nil, err
		}
	}
	return reg, closers, nil
}

// newBoundary returns the game source and sink: an in-process console for a
// local dump, the game server otherwise.
func (a *App) newBoundary(ctx context.Context, cfg config.Config) (agent.Source, agent.Sink, error) {
	if cfg.LocalDump != "" {
		ram, err := console.LoadDump(cfg.LocalDump)
		if err != nil {
			return nil, nil, err
		}
		layout := memory.RedBlue
		if cfg.LayoutPath != "" {
			if layout, err = memory.LoadLayout(cfg.LayoutPath); err != nil {
				return nil, nil, err
			}
		}
		local := agent.NewLocal(ram, layout, a.logger)
		local.Start()
		return local, local, nil
	}

	c := client.New(cfg.ServerURL, nil)
	if err := c.EnsureRunning(ctx); err != nil {
		a.logger.Printf("warning: game server at %s: %v", cfg.ServerURL, err)
	}
	return c, c, nil
}

func (a *App) observe(res agent.TickResult) {
	a.mu.Lock()
	a.lastState = res.State
	a.mu.Unlock()
	if a.observer != nil {
		a.observer(res)
	}
}

// LastState returns the state seen by the most recent tick.
func (a *App) LastState() models.GameState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastState
}

// SaveRun writes the last state and the action history under name. An empty
// name uses a timestamp.
func (a *App) SaveRun(name string) (string, error) {
	if name == "" {
		name = time.Now().Format("20060102-150405")
	}
	run := models.Run{
		SavedAt: time.Now(),
		State:   a.LastState(),
		History: a.Manager.History().Entries(),
	}
	if err := run.Save(name); err != nil {
		return "", fmt.Errorf("save run %s: %w", name, err)
	}
	return name, nil
}

// LoadRun restores the action history of a saved run.
func (a *App) LoadRun(name string) (*models.Run, error) {
	run, err := models.LoadRun(name)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", name, err)
	}
	a.Manager.History().Restore(run.History)
	a.mu.Lock()
	a.lastState = run.State
	a.mu.Unlock()
	return run, nil
}

// Close releases the journal and model clients.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run ticks until ctx is done.
func (a *App) Run(ctx context.Context) error {
	return a.Loop.Run(ctx)
}
