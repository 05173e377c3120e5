// Package manager routes each tick to the decision engine responsible for the
// current role and records the outcome.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tatianab/pokemon-agent/internal/engine"
	"github.com/tatianab/pokemon-agent/internal/models"
)

// DefaultDecideTimeout bounds a single engine call when Config leaves it unset.
const DefaultDecideTimeout = 30 * time.Second

// ErrUnknownDefault is returned when the default engine is not registered.
var ErrUnknownDefault = errors.New("default engine is not registered")

var tracer = otel.Tracer("github.com/tatianab/pokemon-agent/internal/manager")

// Config selects the engines at construction time. Empty engine names use
// DefaultEngine; a negative DecideTimeout disables the deadline.
type Config struct {
	PlayerEngine  string
	PokemonEngine string
	DefaultEngine string
	DualMode      bool
	DecideTimeout time.Duration
}

// Result is the outcome of one dispatch.
type Result struct {
	// Decision carries the tagged commentary.
	Decision models.Decision
	Engine   string
	Role     models.Role
	InBattle bool
	// Fallback is set when the engine's answer was replaced.
	Fallback bool
}

// Status is a point-in-time view of the arbiter configuration.
type Status struct {
	PlayerEngine  string        `json:"player_engine"`
	PokemonEngine string        `json:"pokemon_engine"`
	DualMode      bool          `json:"dual_mode"`
	DecideTimeout time.Duration `json:"decide_timeout"`
	HistoryLen    int           `json:"history_len"`
}

// Manager is the role arbiter. It is the only writer of its history.
type Manager struct {
	registry *engine.Registry
	fallback *engine.Fallback
	history  *models.ActionHistory
	logger   *log.Logger

	defaultEngine string
	timeout       time.Duration

	mu            sync.Mutex
	playerEngine  string
	pokemonEngine string
	dualMode      bool
}

// New builds a manager over the engines in reg. A nil history gets a fresh
// one of the standard capacity; a nil logger uses log.Default.
func New(reg *engine.Registry, fallback *engine.Fallback, history *models.ActionHistory, cfg Config, logger *log.Logger) (*Manager, error) {
	if reg == nil {
		return nil, errors.New("engine registry is required")
	}
	if fallback == nil {
		return nil, errors.New("fallback is required")
	}
	if _, ok := reg.Lookup(cfg.DefaultEngine); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, cfg.DefaultEngine)
	}
	if history == nil {
		history = models.NewActionHistory(models.HistoryCapacity)
	}
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.DecideTimeout
	if timeout == 0 {
		timeout = DefaultDecideTimeout
	}

	m := &Manager{
		registry:      reg,
		fallback:      fallback,
		history:       history,
		logger:        logger,
		defaultEngine: normalize(cfg.DefaultEngine),
		timeout:       timeout,
		dualMode:      cfg.DualMode,
	}
	m.playerEngine = m.resolve(cfg.PlayerEngine)
	m.pokemonEngine = m.resolve(cfg.PokemonEngine)
	return m, nil
}

// History returns the history the manager records into.
func (m *Manager) History() *models.ActionHistory {
	return m.history
}

// SetPlayerEngine selects the exploration engine and returns the previous
// and the now active engine names.
func (m *Manager) SetPlayerEngine(name string) (prev, cur string) {
	resolved := m.resolve(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, m.playerEngine = m.playerEngine, resolved
	m.logger.Printf("player engine: %s -> %s", prev, resolved)
	return prev, resolved
}

// SetPokemonEngine selects the battle engine used in dual mode.
func (m *Manager) SetPokemonEngine(name string) (prev, cur string) {
	resolved := m.resolve(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, m.pokemonEngine = m.pokemonEngine, resolved
	m.logger.Printf("pokemon engine: %s -> %s", prev, resolved)
	return prev, resolved
}

// SetDualMode toggles dual mode.
func (m *Manager) SetDualMode(enabled bool) (prev, cur bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, m.dualMode = m.dualMode, enabled
	if enabled {
		m.logger.Printf("dual mode enabled")
	} else {
		m.logger.Printf("dual mode disabled")
	}
	return prev, enabled
}

// Engines lists the names that can be selected.
func (m *Manager) Engines() []string {
	return m.registry.Names()
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		PlayerEngine:  m.playerEngine,
		PokemonEngine: m.pokemonEngine,
		DualMode:      m.dualMode,
		DecideTimeout: m.timeout,
		HistoryLen:    m.history.Len(),
	}
}

// Dispatch classifies the role, asks the selected engine for a decision and
// records it. It always returns a valid action. Executing the action is the
// caller's job.
func (m *Manager) Dispatch(ctx context.Context, state models.GameState, frame []byte) Result {
	inBattle := IsInBattle(state)

	m.mu.Lock()
	name, role, tag := route(m.playerEngine, m.pokemonEngine, m.dualMode, inBattle)
	m.mu.Unlock()

	ctx, span := tracer.Start(ctx, "manager.Dispatch", trace.WithAttributes(
		attribute.String("engine", name),
		attribute.String("role", string(role)),
		attribute.Bool("in_battle", inBattle),
	))
	defer span.End()

	req := engine.Request{State: state, Frame: frame, Role: role, History: m.history}
	decision, fellBack := m.decide(ctx, name, req)
	span.SetAttributes(
		attribute.String("action", decision.Action.String()),
		attribute.Bool("fallback", fellBack),
	)

	m.history.Record(decision.Action, decision.Commentary)
	decision.Commentary = tag + decision.Commentary

	return Result{
		Decision: decision,
		Engine:   name,
		Role:     role,
		InBattle: inBattle,
		Fallback: fellBack,
	}
}

// route is the dispatch table: which engine runs, under which role, and how
// its commentary is tagged.
func route(player, pokemon string, dual, inBattle bool) (string, models.Role, string) {
	switch {
	case dual && inBattle:
		return pokemon, models.RolePokemon, fmt.Sprintf("[%s as %s] ", pokemon, models.RolePokemon.Label())
	case dual:
		return player, models.RolePlayer, fmt.Sprintf("[%s as %s] ", player, models.RolePlayer.Label())
	case inBattle:
		return player, models.RolePokemon, fmt.Sprintf("[%s in Battle] ", player)
	default:
		return player, models.RolePlayer, fmt.Sprintf("[%s] ", player)
	}
}

type outcome struct {
	decision models.Decision
	panicked any
}

// decide runs the engine under the decide timeout. A late, panicking or
// invalid answer is replaced by the fallback exploration.
func (m *Manager) decide(ctx context.Context, name string, req engine.Request) (models.Decision, bool) {
	e, ok := m.registry.Lookup(name)
	if !ok {
		m.logger.Printf("warning: engine %q disappeared from the registry", name)
		return m.fallback.Explore(req.History), true
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{panicked: r}
			}
		}()
		done <- outcome{decision: e.Decide(ctx, req)}
	}()

	select {
	case out := <-done:
		if out.panicked != nil {
			m.logger.Printf("warning: engine %s panicked: %v", name, out.panicked)
			return m.fallback.Explore(req.History), true
		}
		if !out.decision.Action.Valid() {
			m.logger.Printf("warning: engine %s returned invalid action %q", name, out.decision.Action)
			return m.fallback.Explore(req.History), true
		}
		return out.decision, false
	case <-ctx.Done():
		m.logger.Printf("warning: engine %s did not decide: %v", name, ctx.Err())
		return m.fallback.Explore(req.History), true
	}
}

// resolve maps an operator-supplied name to a registered engine name. Unknown
// names use the default engine.
func (m *Manager) resolve(name string) string {
	key := normalize(name)
	if key == "" {
		return m.defaultEngine
	}
	if _, ok := m.registry.Lookup(key); !ok {
		m.logger.Printf("warning: unknown engine %q, using %s", name, m.defaultEngine)
		return m.defaultEngine
	}
	return key
}
