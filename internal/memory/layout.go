package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout is the table of semantic memory offsets the decoder depends on. It
// must track the target game binary's memory map, so it carries a version.
type Layout struct {
	Version      string `yaml:"version"`
	Money        uint16 `yaml:"money"` // 3 bytes, BCD
	Badges       uint16 `yaml:"badges"`
	MapID        uint16 `yaml:"map_id"`
	ItemCount    uint16 `yaml:"item_count"`
	ItemBase     uint16 `yaml:"item_base"`
	TeamSize     uint16 `yaml:"team_size"`
	TeamBase     uint16 `yaml:"team_base"`
	RecordStride uint16 `yaml:"record_stride"`
	X            uint16 `yaml:"x"`
	Y            uint16 `yaml:"y"`
}

// Offsets within one party record.
const (
	recordSpecies = 0
	recordHP      = 1
	recordMaxHP   = 3
	recordLevel   = 8
)

const (
	// MaxTeamSize bounds the party loop when the size byte is torn.
	MaxTeamSize = 6
	// MaxBagItems bounds the bag loop likewise.
	MaxBagItems = 20
	itemStride  = 2
)

// RedBlue is the layout of the English Red/Blue releases.
var RedBlue = Layout{
	Version:      "red-blue/1",
	Money:        0xD347,
	Badges:       0xD356,
	MapID:        0xD35E,
	ItemCount:    0xD31C,
	ItemBase:     0xD31D,
	TeamSize:     0xD163,
	TeamBase:     0xD16B,
	RecordStride: 44,
	X:            0xD362,
	Y:            0xD361,
}

// LoadLayout reads a layout from a YAML file. Fields left out keep their
// RedBlue values.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}
	l := RedBlue
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if l.RecordStride == 0 {
		return Layout{}, fmt.Errorf("layout %s: record_stride must be positive", path)
	}
	return l, nil
}
