package app

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tatianab/pokemon-agent/internal/agent"
	"github.com/tatianab/pokemon-agent/internal/config"
	"github.com/tatianab/pokemon-agent/internal/console"
	"github.com/tatianab/pokemon-agent/internal/memory"
	"github.com/tatianab/pokemon-agent/internal/models"
	"github.com/tatianab/pokemon-agent/internal/storage/sqlite"
)

func writeDump(t *testing.T) string {
	t.Helper()
	mem := make([]byte, console.AddressSpace)
	l := memory.RedBlue
	mem[l.MapID] = 0x00
	mem[l.Money], mem[l.Money+1], mem[l.Money+2] = 0x00, 0x30, 0x00
	path := filepath.Join(t.TempDir(), "red.ram")
	if err := os.WriteFile(path, mem, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) config.Config {
	dir := t.TempDir()
	return config.Config{
		PlayerEngine:  "rules",
		PokemonEngine: "gemini",
		TickInterval:  time.Millisecond,
		DecideTimeout: time.Second,
		Seed:          7,
		JournalPath:   filepath.Join(dir, "journal.db"),
		SaveDir:       filepath.Join(dir, "saves"),
		LocalDump:     writeDump(t),
	}
}

func TestNewLocalRun(t *testing.T) {
	cfg := testConfig(t)
	var ticks []agent.TickResult
	a, err := New(context.Background(), cfg, log.New(&bytes.Buffer{}, "", 0), func(r agent.TickResult) {
		ticks = append(ticks, r)
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	st := a.Manager.Status()
	if st.PlayerEngine != EngineRules || st.PokemonEngine != EngineRules {
		t.Fatalf("without an API key only rules is available, got %+v", st)
	}
	if names := a.Manager.Engines(); len(names) != 1 || names[0] != EngineRules {
		t.Fatalf("engines = %v", names)
	}
	if a.Seed != 7 {
		t.Fatalf("seed = %d", a.Seed)
	}

	for i := 0; i < 3; i++ {
		if _, err := a.Loop.Tick(context.Background()); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if len(ticks) != 3 || ticks[0].Result.Decision.Action != models.ActionA {
		t.Fatalf("ticks = %+v", ticks)
	}
	if a.LastState().Location != "Pallet Town" {
		t.Fatalf("last state = %+v", a.LastState())
	}

	name, err := a.SaveRun("")
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err := sqlite.Open(cfg.JournalPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	recs, err := store.ListTicks(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[0].Tick != 3 || recs[2].Engine != EngineRules {
		t.Fatalf("journal = %+v", recs)
	}

	b, err := New(context.Background(), cfg, log.New(&bytes.Buffer{}, "", 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	run, err := b.LoadRun(name)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if len(run.History) != 3 || b.Manager.History().Len() != 3 {
		t.Fatalf("restored %d entries, history has %d", len(run.History), b.Manager.History().Len())
	}
}

func TestNewMissingDump(t *testing.T) {
	cfg := testConfig(t)
	cfg.LocalDump = filepath.Join(t.TempDir(), "nope.ram")
	if _, err := New(context.Background(), cfg, log.New(&bytes.Buffer{}, "", 0), nil); err == nil {
		t.Fatal("expected error for a missing dump")
	}
}
