// Package store handles SQLite persistence of filter presets.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/avolkau/meddash/internal/analysis"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Preset is a named, saved set of filter parameters.
type Preset struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	Params    analysis.FilterParams
}

// Store wraps SQLite access for filter presets.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS presets (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			medications TEXT NOT NULL,
			year_min INTEGER NOT NULL,
			year_max INTEGER NOT NULL,
			months TEXT NOT NULL,
			day_min INTEGER NOT NULL,
			day_max INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_presets_name ON presets(name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SavePreset stores a named filter set, replacing any preset with the same name.
func (s *Store) SavePreset(ctx context.Context, name string, params analysis.FilterParams) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("preset name is empty")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO presets (name, created_at, medications, year_min, year_max, months, day_min, day_max)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			created_at = excluded.created_at,
			medications = excluded.medications,
			year_min = excluded.year_min,
			year_max = excluded.year_max,
			months = excluded.months,
			day_min = excluded.day_min,
			day_max = excluded.day_max`,
		name,
		time.Now().Format(time.RFC3339Nano),
		strings.Join(params.Medications, ","),
		params.YearMin,
		params.YearMax,
		joinInts(params.Months),
		params.DayMin,
		params.DayMax,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListPresets returns all presets ordered by name.
func (s *Store) ListPresets(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, medications, year_min, year_max, months, day_min, day_max
		 FROM presets ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var presets []Preset
	for rows.Next() {
		var p Preset
		var createdAt, medications, months string
		if err := rows.Scan(&p.ID, &p.Name, &createdAt, &medications, &p.Params.YearMin, &p.Params.YearMax, &months, &p.Params.DayMin, &p.Params.DayMax); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = parsed
		p.Params.Medications = splitList(medications)
		p.Params.Months, err = splitInts(months)
		if err != nil {
			return nil, fmt.Errorf("preset %q has corrupt months: %w", p.Name, err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return presets, nil
}

// DeletePreset removes a preset by ID. Missing IDs are not an error.
func (s *Store) DeletePreset(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	return err
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}
