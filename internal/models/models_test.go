package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "up", want: ActionUp},
		{in: "  UP ", want: ActionUp},
		{in: "Start", want: ActionStart},
		{in: "select", want: ActionSelect},
		{in: "A", want: ActionA},
		{in: "jump", wantErr: true},
		{in: "", wantErr: true},
		{in: "upp", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownAction) {
				t.Errorf("ParseAction(%q) error = %v, want ErrUnknownAction", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAction(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestActionOpposite(t *testing.T) {
	pairs := map[Action]Action{
		ActionUp:    ActionDown,
		ActionDown:  ActionUp,
		ActionLeft:  ActionRight,
		ActionRight: ActionLeft,
	}
	for a, want := range pairs {
		if got := a.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %q, want %q", a, got, want)
		}
		if !a.IsDirection() {
			t.Errorf("%s.IsDirection() = false", a)
		}
	}
	if ActionA.Opposite() != "" || ActionA.IsDirection() {
		t.Errorf("a should not be a direction")
	}
	if len(Actions()) != 8 {
		t.Errorf("expected 8 actions, got %d", len(Actions()))
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole(" Pokemon "); err != nil || r != RolePokemon {
		t.Fatalf("ParseRole = %q, %v", r, err)
	}
	if _, err := ParseRole("trainer"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if RolePokemon.Label() != "Pokémon" || RolePlayer.Label() != "Trainer" {
		t.Fatalf("unexpected labels %q %q", RolePokemon.Label(), RolePlayer.Label())
	}
}

func TestActionHistoryKeepsMostRecent(t *testing.T) {
	h := NewActionHistory(0)
	dirs := Directions()
	var want []Action
	for i := 0; i < 25; i++ {
		a := dirs[i%len(dirs)]
		h.Record(a, "")
		want = append(want, a)
	}
	want = want[5:]

	if h.Len() != HistoryCapacity {
		t.Fatalf("Len() = %d, want %d", h.Len(), HistoryCapacity)
	}
	got := h.Entries()
	for i, e := range got {
		if e.Action != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, e.Action, want[i])
		}
	}
	last, ok := h.Last()
	if !ok || last.Action != want[len(want)-1] {
		t.Fatalf("Last() = %v, %v", last, ok)
	}
	if recent := h.Recent(3); len(recent) != 3 || recent[2].Action != last.Action {
		t.Fatalf("Recent(3) = %v", recent)
	}
}

func TestActionHistoryEmpty(t *testing.T) {
	h := NewActionHistory(5)
	if _, ok := h.Last(); ok {
		t.Fatalf("empty history reported a last entry")
	}
	if len(h.Entries()) != 0 {
		t.Fatalf("expected no entries")
	}
	var nilHistory *ActionHistory
	if nilHistory.Len() != 0 || nilHistory.Recent(3) != nil {
		t.Fatalf("nil history should read as empty")
	}
}

func TestHPFraction(t *testing.T) {
	tests := []struct {
		p    PokemonEntity
		want float64
	}{
		{PokemonEntity{HP: 10, MaxHP: 20}, 0.5},
		{PokemonEntity{HP: 10, MaxHP: 0}, 0},
		{PokemonEntity{HP: 30, MaxHP: 20}, 1},
	}
	for _, tt := range tests {
		if got := tt.p.HPFraction(); got != tt.want {
			t.Errorf("HPFraction(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestGameStateSummary(t *testing.T) {
	s := GameState{
		Location:    "Pallet Town",
		Coordinates: Coordinates{X: 5, Y: 6},
		Money:       3000,
		PokemonTeam: []PokemonEntity{{Name: "SQUIRTLE", Level: 5, HP: 19, MaxHP: 20}},
		Items:       []ItemEntity{{Name: "POTION", Count: 1}},
	}
	sum := s.Summary()
	for _, want := range []string{`"Pallet Town"`, "(5,6)", "SQUIRTLE Lv.5 19/20", "POTION x1"} {
		if !strings.Contains(sum, want) {
			t.Errorf("Summary() = %q, missing %q", sum, want)
		}
	}
}

func TestRunSaveLoad(t *testing.T) {
	SaveDir = t.TempDir()

	run := &Run{
		SavedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		State: GameState{
			Location:    "Viridian City",
			Badges:      1,
			PokemonTeam: []PokemonEntity{{SpeciesID: 0xB1, Name: "SQUIRTLE", Level: 7, HP: 22, MaxHP: 24}},
		},
		History: []HistoryEntry{{Action: ActionUp, Commentary: "north"}, {Action: ActionA}},
	}
	if err := run.Save("current"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := LoadRun("current")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if got.State.Location != "Viridian City" || len(got.State.PokemonTeam) != 1 {
		t.Errorf("unexpected state %+v", got.State)
	}
	if len(got.History) != 2 || got.History[0].Commentary != "north" {
		t.Errorf("unexpected history %+v", got.History)
	}

	runs, err := ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0] != "current" {
		t.Errorf("ListRuns = %v", runs)
	}
}
