// Package storage defines persistence contracts for the agent's tick journal.
package storage

import (
	"context"
	"time"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// TickRecord is one journaled control-loop tick.
type TickRecord struct {
	Tick       int
	Time       time.Time
	Location   string
	Money      uint
	Badges     uint
	TeamSize   int
	Role       models.Role
	Engine     string
	Action     models.Action
	Commentary string
	// Fallback is set when the engine's own answer was replaced.
	Fallback bool
	Executed bool
	// Error is the execution error text, if any.
	Error string
}

// TickStore persists tick records.
type TickStore interface {
	PutTick(ctx context.Context, rec TickRecord) error
	// ListTicks returns up to limit records, most recent first.
	ListTicks(ctx context.Context, limit int) ([]TickRecord, error)
}
