package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// sparse is a Memory backed by a map so tests only set what they need.
type sparse map[uint16]uint8

func (s sparse) Peek(addr uint16) uint8 { return s[addr] }

func TestDecodeMoney(t *testing.T) {
	tests := []struct {
		b1, b2, b3 uint8
		want       uint
	}{
		{0x01, 0x23, 0x45, 12345},
		{0x00, 0x00, 0x00, 0},
		{0x99, 0x99, 0x99, 999999},
		{0x00, 0x30, 0x00, 3000},
		// nibbles above 9 are tolerated, not rejected
		{0x00, 0x00, 0x0A, 10},
		{0xFF, 0x00, 0x00, 1650000},
	}
	for _, tt := range tests {
		if got := DecodeMoney(tt.b1, tt.b2, tt.b3); got != tt.want {
			t.Errorf("DecodeMoney(%#x, %#x, %#x) = %d, want %d", tt.b1, tt.b2, tt.b3, got, tt.want)
		}
	}
}

func TestDecodeMoneyAllValidBCD(t *testing.T) {
	for d := 0; d < 10; d++ {
		b := uint8(d<<4 | d)
		want := uint(d*100000 + d*10000 + d*1000 + d*100 + d*10 + d)
		if got := DecodeMoney(b, b, b); got != want {
			t.Fatalf("DecodeMoney(%#x x3) = %d, want %d", b, got, want)
		}
	}
}

func TestCountBadges(t *testing.T) {
	for v := 0; v < 256; v++ {
		want := uint(0)
		for b := v; b != 0; b >>= 1 {
			want += uint(b & 1)
		}
		if got := CountBadges(uint8(v)); got != want {
			t.Fatalf("CountBadges(%#08b) = %d, want %d", v, got, want)
		}
	}
	if CountBadges(0b00000111) != 3 || CountBadges(0x00) != 0 || CountBadges(0xFF) != 8 {
		t.Fatalf("badge spot checks failed")
	}
}

func writeRecord(m sparse, base uint16, species, level uint8, hp, maxHP uint16) {
	m[base] = species
	m[base+1] = uint8(hp >> 8)
	m[base+2] = uint8(hp)
	m[base+3] = uint8(maxHP >> 8)
	m[base+4] = uint8(maxHP)
	m[base+8] = level
}

func TestDecodeTeam(t *testing.T) {
	l := RedBlue
	for n := 0; n <= MaxTeamSize; n++ {
		m := sparse{l.TeamSize: uint8(n)}
		for i := 0; i < n; i++ {
			writeRecord(m, l.TeamBase+uint16(i)*44, 0xB1, uint8(5+i), uint16(300+i), uint16(310+i))
		}
		team := NewDecoder(l).Decode(m).PokemonTeam
		if len(team) != n {
			t.Fatalf("team size %d decoded %d records", n, len(team))
		}
		for i, p := range team {
			if p.Name != "SQUIRTLE" || p.Level != uint8(5+i) || p.HP != uint16(300+i) || p.MaxHP != uint16(310+i) {
				t.Fatalf("record %d = %+v", i, p)
			}
		}
	}
}

func TestDecodeTeamTolerance(t *testing.T) {
	l := RedBlue
	m := sparse{l.TeamSize: 0xFF}
	// unknown species and hp > max_hp are decoded as-is
	writeRecord(m, l.TeamBase, 0x1F, 3, 50, 10)
	team := NewDecoder(l).Decode(m).PokemonTeam
	if len(team) != MaxTeamSize {
		t.Fatalf("torn team size should clamp to %d, got %d", MaxTeamSize, len(team))
	}
	if team[0].Name != models.PlaceholderName || team[0].HP != 50 || team[0].MaxHP != 10 {
		t.Fatalf("unexpected first record %+v", team[0])
	}
}

func TestDecodeItems(t *testing.T) {
	l := RedBlue
	m := sparse{
		l.ItemCount:    3,
		l.ItemBase:     0x14, // POTION
		l.ItemBase + 1: 4,
		l.ItemBase + 2: 0x04,
		l.ItemBase + 3: 10,
		l.ItemBase + 4: 0xEE,
		l.ItemBase + 5: 1,
	}
	items := NewDecoder(l).Decode(m).Items
	want := []models.ItemEntity{
		{ItemID: 0x14, Name: "POTION", Count: 4},
		{ItemID: 0x04, Name: "POKé BALL", Count: 10},
		{ItemID: 0xEE, Name: models.PlaceholderName, Count: 1},
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestDecodeFullState(t *testing.T) {
	l := RedBlue
	m := sparse{
		l.Money:     0x00,
		l.Money + 1: 0x30,
		l.Money + 2: 0x00,
		l.Badges:    0b00000011,
		l.MapID:     0x00,
		l.X:         5,
		l.Y:         6,
	}
	s := NewDecoder(l).Decode(m)
	if s.Location != "Pallet Town" || s.Money != 3000 || s.Badges != 2 {
		t.Fatalf("unexpected state %+v", s)
	}
	if s.Coordinates != (models.Coordinates{X: 5, Y: 6}) {
		t.Fatalf("coordinates = %v", s.Coordinates)
	}
	if len(s.PokemonTeam) != 0 || len(s.Items) != 0 {
		t.Fatalf("expected empty team and bag, got %+v", s)
	}
}

func TestDecodeUnknownLocation(t *testing.T) {
	m := sparse{RedBlue.MapID: 0xF7}
	if got := NewDecoder(RedBlue).Decode(m).Location; got != "" {
		t.Fatalf("unknown map id resolved to %q", got)
	}
}

func TestBytesOutOfRange(t *testing.T) {
	b := Bytes{1, 2, 3}
	if b.Peek(2) != 3 || b.Peek(3) != 0 || b.Peek(0xFFFF) != 0 {
		t.Fatalf("out-of-range reads must return 0")
	}
	// a short dump still decodes to a complete state
	s := NewDecoder(RedBlue).Decode(b)
	if s.PokemonTeam == nil || s.Items == nil {
		t.Fatalf("decode of empty memory should still allocate sequences")
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := "version: test/2\nmoney: 0xC000\nrecord_stride: 48\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	if l.Version != "test/2" || l.Money != 0xC000 || l.RecordStride != 48 {
		t.Fatalf("unexpected layout %+v", l)
	}
	if l.TeamBase != RedBlue.TeamBase {
		t.Fatalf("unset fields should keep defaults, got team_base %#x", l.TeamBase)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("record_stride: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLayout(bad); err == nil {
		t.Fatalf("expected error for zero stride")
	}
}
