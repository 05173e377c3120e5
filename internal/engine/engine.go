// Package engine holds the pluggable decision engines and the registry the
// arbiter selects them from.
package engine

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// Request is everything an engine may look at for one tick.
type Request struct {
	State models.GameState
	// Frame is the current screen as PNG bytes, or nil.
	Frame []byte
	Role  models.Role
	// History is read-only for engines.
	History *models.ActionHistory
}

// Engine maps a request to a decision. Implementations must not fail: any
// internal error becomes a fallback decision.
type Engine interface {
	Decide(ctx context.Context, req Request) models.Decision
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, req Request) models.Decision

func (f EngineFunc) Decide(ctx context.Context, req Request) models.Decision {
	return f(ctx, req)
}

var (
	ErrEmptyName       = errors.New("engine name is required")
	ErrNilEngine       = errors.New("engine is nil")
	ErrDuplicateEngine = errors.New("engine already registered")
)

// Registry maps lowercase names to engines.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

// Register adds e under name.
func (r *Registry) Register(name string, e Engine) error {
	key := normalizeName(name)
	if key == "" {
		return ErrEmptyName
	}
	if e == nil {
		return ErrNilEngine
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.engines[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEngine, key)
	}
	r.engines[key] = e
	return nil
}

// Lookup finds an engine by name, ignoring case and surrounding space.
func (r *Registry) Lookup(name string) (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[normalizeName(name)]
	return e, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.engines))
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
