package engine

import (
	"math/rand/v2"
	"sync"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// FallbackCommentary accompanies every fallback decision.
const FallbackCommentary = "Exploring the area to find new paths and Pokémon."

// Fallback is the deterministic-given-seed exploration used whenever an
// engine cannot produce a decision.
type Fallback struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallback wraps rng. The generator is owned by the fallback afterwards.
func NewFallback(rng *rand.Rand) *Fallback {
	return &Fallback{rng: rng}
}

// Candidates returns the directions eligible after history: every direction
// except the reverse of the last recorded action.
func Candidates(history *models.ActionHistory) []models.Action {
	dirs := models.Directions()
	last, ok := history.Last()
	if !ok || !last.Action.IsDirection() {
		return dirs
	}
	avoid := last.Action.Opposite()
	out := dirs[:0]
	for _, d := range dirs {
		if d != avoid {
			out = append(out, d)
		}
	}
	return out
}

// Explore picks uniformly among Candidates(history).
func (f *Fallback) Explore(history *models.ActionHistory) models.Decision {
	options := Candidates(history)
	f.mu.Lock()
	i := f.rng.IntN(len(options))
	f.mu.Unlock()
	return models.Decision{Action: options[i], Commentary: FallbackCommentary}
}

// chance reports true with probability p.
func (f *Fallback) chance(p float64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng.Float64() < p
}

// pick returns a uniformly chosen element of options.
func (f *Fallback) pick(options []models.Action) models.Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	return options[f.rng.IntN(len(options))]
}
