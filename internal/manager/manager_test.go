package manager

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tatianab/pokemon-agent/internal/engine"
	"github.com/tatianab/pokemon-agent/internal/models"
)

// recorder is an engine that remembers the roles it was asked to decide for.
type recorder struct {
	mu       sync.Mutex
	decision models.Decision
	roles    []models.Role
}

func (r *recorder) Decide(_ context.Context, req engine.Request) models.Decision {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles = append(r.roles, req.Role)
	return r.decision
}

func (r *recorder) calls() []models.Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Role(nil), r.roles...)
}

type fixture struct {
	mgr     *Manager
	logs    *bytes.Buffer
	player  *recorder
	pokemon *recorder
}

func newFixture(t *testing.T, cfg Config, extra map[string]engine.Engine) fixture {
	t.Helper()
	reg := engine.NewRegistry()
	player := &recorder{decision: models.Decision{Action: models.ActionUp, Commentary: "walking"}}
	pokemon := &recorder{decision: models.Decision{Action: models.ActionA, Commentary: "attacking"}}
	if err := reg.Register("trainer", player); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("fighter", pokemon); err != nil {
		t.Fatal(err)
	}
	for name, e := range extra {
		if err := reg.Register(name, e); err != nil {
			t.Fatal(err)
		}
	}
	if cfg.DefaultEngine == "" {
		cfg.DefaultEngine = "trainer"
	}
	var logs bytes.Buffer
	fb := engine.NewFallback(rand.New(rand.NewPCG(1, 2)))
	m, err := New(reg, fb, nil, cfg, log.New(&logs, "", 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return fixture{mgr: m, logs: &logs, player: player, pokemon: pokemon}
}

var battleState = models.GameState{Location: "Route 1", Screen: "battle"}

func TestDispatchTable(t *testing.T) {
	tests := []struct {
		name       string
		dual       bool
		state      models.GameState
		wantEngine string
		wantRole   models.Role
		wantTag    string
	}{
		{"single overworld", false, models.GameState{Location: "Route 1"}, "trainer", models.RolePlayer, "[trainer] walking"},
		{"single battle", false, battleState, "trainer", models.RolePokemon, "[trainer in Battle] walking"},
		{"dual overworld", true, models.GameState{Location: "Route 1"}, "trainer", models.RolePlayer, "[trainer as Trainer] walking"},
		{"dual battle", true, battleState, "fighter", models.RolePokemon, "[fighter as Pokémon] attacking"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Config{PlayerEngine: "trainer", PokemonEngine: "fighter", DualMode: tt.dual}, nil)
			res := f.mgr.Dispatch(context.Background(), tt.state, nil)
			if res.Engine != tt.wantEngine || res.Role != tt.wantRole {
				t.Fatalf("dispatched to %s as %s, want %s as %s", res.Engine, res.Role, tt.wantEngine, tt.wantRole)
			}
			if res.Decision.Commentary != tt.wantTag {
				t.Fatalf("commentary = %q, want %q", res.Decision.Commentary, tt.wantTag)
			}
			if res.Fallback {
				t.Fatalf("unexpected fallback")
			}
		})
	}
}

func TestDualModeBattleIgnoresPlayerEngine(t *testing.T) {
	f := newFixture(t, Config{PlayerEngine: "trainer", PokemonEngine: "fighter", DualMode: true}, nil)
	res := f.mgr.Dispatch(context.Background(), battleState, nil)
	if res.Decision.Action != models.ActionA {
		t.Fatalf("action = %s", res.Decision.Action)
	}
	if calls := f.player.calls(); len(calls) != 0 {
		t.Fatalf("player engine called %d times", len(calls))
	}
	if calls := f.pokemon.calls(); len(calls) != 1 || calls[0] != models.RolePokemon {
		t.Fatalf("pokemon engine calls = %v", calls)
	}
}

func TestPalletTownScenario(t *testing.T) {
	reg := engine.NewRegistry()
	fb := engine.NewFallback(rand.New(rand.NewPCG(4, 4)))
	if err := reg.Register("rules", engine.NewRules(fb)); err != nil {
		t.Fatal(err)
	}
	m, err := New(reg, fb, nil, Config{DefaultEngine: "rules"}, log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatal(err)
	}

	state := models.GameState{Location: "Pallet Town"}
	res := m.Dispatch(context.Background(), state, nil)
	if res.Role != models.RolePlayer || res.Engine != "rules" {
		t.Fatalf("dispatched to %s as %s", res.Engine, res.Role)
	}
	if !res.Decision.Action.Valid() {
		t.Fatalf("invalid action %q", res.Decision.Action)
	}
	last, ok := m.History().Last()
	if !ok || last.Action != res.Decision.Action {
		t.Fatalf("history last = %+v, %v", last, ok)
	}
	if strings.HasPrefix(last.Commentary, "[") {
		t.Fatalf("history should hold the untagged commentary, got %q", last.Commentary)
	}
}

func TestSetters(t *testing.T) {
	f := newFixture(t, Config{PlayerEngine: "trainer", PokemonEngine: "trainer"}, nil)

	prev, cur := f.mgr.SetPlayerEngine("FIGHTER")
	if prev != "trainer" || cur != "fighter" {
		t.Fatalf("SetPlayerEngine = (%s, %s)", prev, cur)
	}
	prev, cur = f.mgr.SetPokemonEngine("fighter")
	if prev != "trainer" || cur != "fighter" {
		t.Fatalf("SetPokemonEngine = (%s, %s)", prev, cur)
	}
	wasDual, isDual := f.mgr.SetDualMode(true)
	if wasDual || !isDual {
		t.Fatalf("SetDualMode = (%v, %v)", wasDual, isDual)
	}

	st := f.mgr.Status()
	if st.PlayerEngine != "fighter" || st.PokemonEngine != "fighter" || !st.DualMode {
		t.Fatalf("Status() = %+v", st)
	}
}

func TestUnknownEngineUsesDefault(t *testing.T) {
	f := newFixture(t, Config{PlayerEngine: "nonexistent", PokemonEngine: "fighter", DefaultEngine: "fighter"}, nil)
	if got := f.mgr.Status().PlayerEngine; got != "fighter" {
		t.Fatalf("player engine = %s", got)
	}
	f.logs.Reset()

	prev, cur := f.mgr.SetPokemonEngine("grok")
	if prev != "fighter" || cur != "fighter" {
		t.Fatalf("SetPokemonEngine = (%s, %s)", prev, cur)
	}
	if !strings.Contains(f.logs.String(), `warning: unknown engine "grok"`) {
		t.Fatalf("missing warning, logs: %s", f.logs.String())
	}
}

func TestNewRejectsUnknownDefault(t *testing.T) {
	reg := engine.NewRegistry()
	fb := engine.NewFallback(rand.New(rand.NewPCG(1, 1)))
	_, err := New(reg, fb, nil, Config{DefaultEngine: "rules"}, nil)
	if !errors.Is(err, ErrUnknownDefault) {
		t.Fatalf("New error = %v", err)
	}
}

func TestDispatchFallbacks(t *testing.T) {
	slow := engine.EngineFunc(func(ctx context.Context, _ engine.Request) models.Decision {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return models.Decision{Action: models.ActionStart, Commentary: "too late"}
	})
	garbage := engine.EngineFunc(func(context.Context, engine.Request) models.Decision {
		return models.Decision{Action: "tackle", Commentary: "use tackle"}
	})
	panicky := engine.EngineFunc(func(context.Context, engine.Request) models.Decision {
		panic("model client exploded")
	})

	tests := []struct {
		name    string
		engine  string
		wantLog string
	}{
		{"timeout", "slow", "did not decide"},
		{"invalid action", "garbage", `invalid action "tackle"`},
		{"panic", "panicky", "panicked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Config{PlayerEngine: tt.engine, DecideTimeout: 20 * time.Millisecond}, map[string]engine.Engine{
				"slow":    slow,
				"garbage": garbage,
				"panicky": panicky,
			})
			f.mgr.History().Record(models.ActionLeft, "")

			res := f.mgr.Dispatch(context.Background(), models.GameState{Location: "Route 1"}, nil)
			if !res.Fallback {
				t.Fatalf("expected fallback, got %+v", res)
			}
			if res.Decision.Action == models.ActionRight || !res.Decision.Action.IsDirection() {
				t.Fatalf("fallback chose %q after left", res.Decision.Action)
			}
			want := "[" + tt.engine + "] " + engine.FallbackCommentary
			if res.Decision.Commentary != want {
				t.Fatalf("commentary = %q, want %q", res.Decision.Commentary, want)
			}
			last, _ := f.mgr.History().Last()
			if last.Action != res.Decision.Action {
				t.Fatalf("history recorded %q, dispatched %q", last.Action, res.Decision.Action)
			}
			if !strings.Contains(f.logs.String(), tt.wantLog) {
				t.Fatalf("logs %q do not mention %q", f.logs.String(), tt.wantLog)
			}
		})
	}
}

func TestHistoryBoundedAcrossDispatches(t *testing.T) {
	f := newFixture(t, Config{PlayerEngine: "trainer"}, nil)
	for i := 0; i < 25; i++ {
		f.mgr.Dispatch(context.Background(), models.GameState{}, nil)
	}
	if n := f.mgr.History().Len(); n != models.HistoryCapacity {
		t.Fatalf("history length = %d", n)
	}
	if n := f.mgr.Status().HistoryLen; n != models.HistoryCapacity {
		t.Fatalf("status history length = %d", n)
	}
}

func TestIsInBattle(t *testing.T) {
	tests := []struct {
		name  string
		state models.GameState
		want  bool
	}{
		{"screen field", models.GameState{Screen: "battle"}, true},
		{"screen field any case", models.GameState{Screen: "Battle"}, true},
		{"overworld", models.GameState{Location: "Viridian City", Screen: "overworld"}, false},
		{"empty", models.GameState{}, false},
		{"text match", models.GameState{Location: "Battle Tower"}, true},
		{"team name", models.GameState{PokemonTeam: []models.PokemonEntity{{Name: "BATTLEMON"}}}, true},
	}
	for _, tt := range tests {
		if got := IsInBattle(tt.state); got != tt.want {
			t.Errorf("%s: IsInBattle = %v, want %v", tt.name, got, tt.want)
		}
	}
}
