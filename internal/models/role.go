package models

import (
	"fmt"
	"strings"
)

// Role is the decision context for a tick.
type Role string

const (
	// RolePlayer is overworld exploration and navigation.
	RolePlayer Role = "player"
	// RolePokemon is a battle turn.
	RolePokemon Role = "pokemon"
)

// ParseRole accepts "player" or "pokemon" in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RolePlayer, RolePokemon:
		return r, nil
	default:
		return "", fmt.Errorf("invalid role %q: must be %q or %q", s, RolePlayer, RolePokemon)
	}
}

// Label is the human-facing name used in commentary tags.
func (r Role) Label() string {
	if r == RolePokemon {
		return "Pokémon"
	}
	return "Trainer"
}
