// Package sqlite provides a SQLite-backed tick journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tatianab/pokemon-agent/internal/models"
	"github.com/tatianab/pokemon-agent/internal/storage"
	"github.com/tatianab/pokemon-agent/internal/storage/sqlite/migrations"
)

// Store persists tick records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite journal and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutTick appends one tick record.
func (s *Store) PutTick(ctx context.Context, rec storage.TickRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if !rec.Action.Valid() {
		return fmt.Errorf("put tick %d: %w: %q", rec.Tick, models.ErrUnknownAction, rec.Action)
	}
	at := rec.Time
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO ticks (
		   tick, recorded_at, location, money, badges, team_size,
		   role, engine, action, commentary, fallback, executed, error
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Tick,
		toMillis(at),
		rec.Location,
		int64(rec.Money),
		int64(rec.Badges),
		rec.TeamSize,
		string(rec.Role),
		rec.Engine,
		string(rec.Action),
		rec.Commentary,
		rec.Fallback,
		rec.Executed,
		rec.Error,
	)
	if err != nil {
		return fmt.Errorf("put tick %d: %w", rec.Tick, err)
	}
	return nil
}

// ListTicks returns up to limit records, most recent first.
func (s *Store) ListTicks(ctx context.Context, limit int) ([]storage.TickRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT tick, recorded_at, location, money, badges, team_size,
		        role, engine, action, commentary, fallback, executed, error
		   FROM ticks
		  ORDER BY id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list ticks: %w", err)
	}
	defer rows.Close()

	records := make([]storage.TickRecord, 0, limit)
	for rows.Next() {
		var (
			rec           storage.TickRecord
			recordedAt    int64
			money, badges int64
			role, action  string
		)
		if err := rows.Scan(
			&rec.Tick,
			&recordedAt,
			&rec.Location,
			&money,
			&badges,
			&rec.TeamSize,
			&role,
			&rec.Engine,
			&action,
			&rec.Commentary,
			&rec.Fallback,
			&rec.Executed,
			&rec.Error,
		); err != nil {
			return nil, fmt.Errorf("list ticks: %w", err)
		}
		rec.Time = fromMillis(recordedAt)
		rec.Money = uint(money)
		rec.Badges = uint(badges)
		rec.Role = models.Role(role)
		rec.Action = models.Action(action)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ticks: %w", err)
	}
	return records, nil
}

var _ storage.TickStore = (*Store)(nil)
