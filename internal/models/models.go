package models

import (
	"fmt"
	"strings"
)

// PlaceholderName is used for species and items missing from the lookup tables.
const PlaceholderName = "UNKNOWN"

// MaxBadges is the number of gym badges in the game.
const MaxBadges = 8

// Coordinates is the player's tile position on the current map.
type Coordinates struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// String renders the pair the way the game server has always reported it.
func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// PokemonEntity is one party member as decoded from memory.
type PokemonEntity struct {
	SpeciesID uint8  `yaml:"species_id" json:"species_id"`
	Name      string `yaml:"name" json:"name"`
	Level     uint8  `yaml:"level" json:"level"`
	HP        uint16 `yaml:"hp" json:"hp"`
	MaxHP     uint16 `yaml:"max_hp" json:"max_hp"`
}

// HPFraction returns HP/MaxHP clamped to [0,1]. Torn reads can produce
// HP > MaxHP or MaxHP == 0; neither is an error here.
func (p PokemonEntity) HPFraction() float64 {
	if p.MaxHP == 0 {
		return 0
	}
	f := float64(p.HP) / float64(p.MaxHP)
	if f > 1 {
		return 1
	}
	return f
}

// ItemEntity is one bag slot.
type ItemEntity struct {
	ItemID uint8  `yaml:"item_id" json:"item_id"`
	Name   string `yaml:"name" json:"name"`
	Count  uint8  `yaml:"count" json:"count"`
}

// GameState is an immutable snapshot of the game produced once per tick.
type GameState struct {
	Location    string          `yaml:"location" json:"location"`
	Coordinates Coordinates     `yaml:"coordinates" json:"coordinates"`
	Badges      uint            `yaml:"badges" json:"badges"`
	Money       uint            `yaml:"money" json:"money"`
	PokemonTeam []PokemonEntity `yaml:"pokemon_team" json:"pokemon_team"`
	Items       []ItemEntity    `yaml:"items" json:"items"`
	// Screen is set only by sources that know which screen is shown.
	Screen string `yaml:"screen,omitempty" json:"screen,omitempty"`
}

// Lead returns the first party member, if any.
func (s GameState) Lead() (PokemonEntity, bool) {
	if len(s.PokemonTeam) == 0 {
		return PokemonEntity{}, false
	}
	return s.PokemonTeam[0], true
}

// Summary renders every field of the state as a single line of text.
func (s GameState) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "location=%q coordinates=%s badges=%d money=%d", s.Location, s.Coordinates, s.Badges, s.Money)
	if s.Screen != "" {
		fmt.Fprintf(&b, " screen=%q", s.Screen)
	}
	b.WriteString(" team=[")
	for i, p := range s.PokemonTeam {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s Lv.%d %d/%d", p.Name, p.Level, p.HP, p.MaxHP)
	}
	b.WriteString("] items=[")
	for i, it := range s.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s x%d", it.Name, it.Count)
	}
	b.WriteString("]")
	return b.String()
}

// Decision is what a decision engine hands back for one tick.
type Decision struct {
	Action     Action `yaml:"action" json:"action"`
	Commentary string `yaml:"commentary" json:"commentary"`
}

// HistoryEntry is one recorded (action, commentary) pair.
type HistoryEntry struct {
	Action     Action `yaml:"action" json:"action"`
	Commentary string `yaml:"commentary,omitempty" json:"commentary,omitempty"`
}
