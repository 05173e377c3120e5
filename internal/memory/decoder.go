// Package memory turns raw console memory into a models.GameState.
//
// Decoding is total. The console can be read at any frame boundary, including
// in the middle of an engine-internal write, so every field is decoded
// independently and an anomalous byte just produces an anomalous value.
package memory

import (
	"math/bits"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// Memory is read-only access to the console's address space. Reads outside
// the mapped range return 0.
type Memory interface {
	Peek(addr uint16) uint8
}

// Bytes adapts a flat byte slice (e.g. a RAM dump) to Memory.
type Bytes []byte

func (b Bytes) Peek(addr uint16) uint8 {
	if int(addr) >= len(b) {
		return 0
	}
	return b[addr]
}

// Decoder reads a GameState using a fixed Layout.
type Decoder struct {
	Layout Layout
}

// NewDecoder returns a decoder for l.
func NewDecoder(l Layout) *Decoder {
	return &Decoder{Layout: l}
}

// Decode reads every field of the state from m.
func (d *Decoder) Decode(m Memory) models.GameState {
	l := d.Layout
	return models.GameState{
		Location: LocationName(m.Peek(l.MapID)),
		Coordinates: models.Coordinates{
			X: int(m.Peek(l.X)),
			Y: int(m.Peek(l.Y)),
		},
		Badges:      CountBadges(m.Peek(l.Badges)),
		Money:       DecodeMoney(m.Peek(l.Money), m.Peek(l.Money+1), m.Peek(l.Money+2)),
		PokemonTeam: d.team(m),
		Items:       d.items(m),
	}
}

// DecodeMoney concatenates the six BCD nibbles of b1 b2 b3, most significant
// first. Nibbles above 9 are not rejected; they still contribute their value.
func DecodeMoney(b1, b2, b3 uint8) uint {
	var money uint
	for _, b := range [3]uint8{b1, b2, b3} {
		money = money*10 + uint(b>>4)
		money = money*10 + uint(b&0x0F)
	}
	return money
}

// CountBadges is the number of set bits in the badge byte.
func CountBadges(b uint8) uint {
	return uint(bits.OnesCount8(b))
}

func (d *Decoder) team(m Memory) []models.PokemonEntity {
	l := d.Layout
	n := int(m.Peek(l.TeamSize))
	if n > MaxTeamSize {
		n = MaxTeamSize
	}
	team := make([]models.PokemonEntity, 0, n)
	for i := 0; i < n; i++ {
		base := l.TeamBase + uint16(i)*l.RecordStride
		species := m.Peek(base + recordSpecies)
		team = append(team, models.PokemonEntity{
			SpeciesID: species,
			Name:      SpeciesName(species),
			Level:     m.Peek(base + recordLevel),
			HP:        peek16(m, base+recordHP),
			MaxHP:     peek16(m, base+recordMaxHP),
		})
	}
	return team
}

func (d *Decoder) items(m Memory) []models.ItemEntity {
	l := d.Layout
	n := int(m.Peek(l.ItemCount))
	if n > MaxBagItems {
		n = MaxBagItems
	}
	items := make([]models.ItemEntity, 0, n)
	for j := 0; j < n; j++ {
		addr := l.ItemBase + uint16(j)*itemStride
		id := m.Peek(addr)
		items = append(items, models.ItemEntity{
			ItemID: id,
			Name:   ItemName(id),
			Count:  m.Peek(addr + 1),
		})
	}
	return items
}

// peek16 reads a big-endian 16-bit value.
func peek16(m Memory, addr uint16) uint16 {
	return uint16(m.Peek(addr))<<8 | uint16(m.Peek(addr+1))
}
