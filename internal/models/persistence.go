package models

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SaveDir is where runs are written unless a caller overrides it.
var SaveDir = ".saves"

// Run is a saved agent session: the last observed state and recent actions.
type Run struct {
	SavedAt time.Time      `yaml:"saved_at"`
	State   GameState      `yaml:"state"`
	History []HistoryEntry `yaml:"history"`
}

func (r *Run) Save(name string) error {
	dir := filepath.Join(SaveDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	stateData, err := yaml.Marshal(struct {
		SavedAt time.Time `yaml:"saved_at"`
		State   GameState `yaml:"state"`
	}{r.SavedAt, r.State})
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "state.yaml"), stateData, 0644); err != nil {
		return err
	}

	historyData, err := yaml.Marshal(r.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "history.yaml"), historyData, 0644); err != nil {
		return err
	}

	return nil
}

func LoadRun(name string) (*Run, error) {
	dir := filepath.Join(SaveDir, name)

	stateData, err := os.ReadFile(filepath.Join(dir, "state.yaml"))
	if err != nil {
		return nil, err
	}
	var state struct {
		SavedAt time.Time `yaml:"saved_at"`
		State   GameState `yaml:"state"`
	}
	if err := yaml.Unmarshal(stateData, &state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	historyData, err := os.ReadFile(filepath.Join(dir, "history.yaml"))
	if err != nil {
		return nil, err
	}
	var history []HistoryEntry
	if err := yaml.Unmarshal(historyData, &history); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	// A hand-edited file must not smuggle unknown buttons back in.
	kept := history[:0]
	for _, e := range history {
		if e.Action.Valid() {
			kept = append(kept, e)
		}
	}

	return &Run{
		SavedAt: state.SavedAt,
		State:   state.State,
		History: kept,
	}, nil
}

func ListRuns() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var runs []string
	for _, entry := range entries {
		if entry.IsDir() {
			// state.yaml marks a complete run
			statePath := filepath.Join(SaveDir, entry.Name(), "state.yaml")
			if _, err := os.Stat(statePath); err == nil {
				runs = append(runs, entry.Name())
			}
		}
	}
	return runs, nil
}
