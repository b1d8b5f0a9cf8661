/*
Package sqlite persists named simulation scenarios.

PURPOSE:
  Saved scenarios are parameter sets a user wants to revisit - the
  simulation engine itself stays pure and never touches storage, and
  results are never persisted (they are cheap to recompute from the
  parameters).

KEY TABLE:
  scenarios: id (uuid), name, description, params JSON, created_at

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety within one process. A server
  deployment with concurrent writers would move to PostgreSQL with the
  same interface.

USAGE:
  store, err := sqlite.New("./data/scenarios.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  rec, err := store.SaveScenario(ctx, sqlite.Scenario{
      Name:       "aggressive restake",
      ParamsJSON: body,
  })

SEE ALSO:
  - scenario/codec.go: The JSON shape stored in params
  - api/handlers.go: HTTP surface over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrScenarioNotFound is returned when a scenario ID matches nothing.
var ErrScenarioNotFound = errors.New("scenario not found")

// Scenario is a saved, named parameter set. ParamsJSON holds the
// scenario codec wire form verbatim.
type Scenario struct {
	ID          string
	Name        string
	Description string
	ParamsJSON  string
	CreatedAt   time.Time
}

// Store persists scenarios in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) a scenario store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		params      TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scenarios_created ON scenarios(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SaveScenario stores a scenario, assigning an ID when empty, and
// returns the stored record.
func (s *Store) SaveScenario(ctx context.Context, sc Scenario) (Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, description, params, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			params = excluded.params`,
		sc.ID, sc.Name, sc.Description, sc.ParamsJSON, sc.CreatedAt)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to save scenario: %w", err)
	}
	return sc, nil
}

// GetScenario loads one scenario by ID.
func (s *Store) GetScenario(ctx context.Context, id string) (*Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, params, created_at
		FROM scenarios WHERE id = ?`, id)

	var sc Scenario
	err := row.Scan(&sc.ID, &sc.Name, &sc.Description, &sc.ParamsJSON, &sc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScenarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	return &sc, nil
}

// ListScenarios returns all saved scenarios, newest first.
func (s *Store) ListScenarios(ctx context.Context) ([]Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, params, created_at
		FROM scenarios ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		var sc Scenario
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Description, &sc.ParamsJSON, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// DeleteScenario removes a scenario by ID.
func (s *Store) DeleteScenario(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrScenarioNotFound
	}
	return nil
}
