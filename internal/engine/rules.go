package engine

import (
	"context"
	"fmt"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// Rules is a model-free engine: a handful of heuristics plus weighted
// randomness. It is the default engine and never blocks.
type Rules struct {
	rand *Fallback
}

// NewRules returns a rule engine drawing randomness from f.
func NewRules(f *Fallback) *Rules {
	return &Rules{rand: f}
}

func (r *Rules) Decide(_ context.Context, req Request) models.Decision {
	if req.Role == models.RolePokemon {
		return r.battle(req.State)
	}
	return r.explore(req)
}

func (r *Rules) explore(req Request) models.Decision {
	if req.State.Location == "Pallet Town" && req.History.Len() == 0 {
		return models.Decision{Action: models.ActionA, Commentary: "Let's start our Pokémon adventure!"}
	}

	// Until there is a starter, alternate between confirming dialogue and
	// wandering toward the lab.
	if len(req.State.PokemonTeam) == 0 && req.History.Len() < 15 {
		if r.rand.chance(0.5) {
			return models.Decision{Action: models.ActionA, Commentary: "Exploring the options..."}
		}
		return models.Decision{Action: r.rand.pick(models.Directions()), Commentary: "Looking for a starter Pokémon..."}
	}

	if r.rand.chance(0.3) {
		return models.Decision{Action: models.ActionA, Commentary: "Let's see what this person has to say!"}
	}
	dir := r.rand.pick(models.Directions())
	return models.Decision{Action: dir, Commentary: fmt.Sprintf("Exploring in the %s direction.", dir)}
}

func (r *Rules) battle(state models.GameState) models.Decision {
	lead, ok := state.Lead()
	if !ok {
		return models.Decision{Action: models.ActionA, Commentary: "Let's see what happens next in this battle!"}
	}
	if lead.HPFraction() < 0.3 {
		return models.Decision{Action: models.ActionB, Commentary: fmt.Sprintf("%s is low on health! Backing out to heal.", lead.Name)}
	}
	return models.Decision{Action: models.ActionA, Commentary: "Using our strongest move! It should be super effective!"}
}
