package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shiftsat/shiftsat/internal/database"
	"github.com/shiftsat/shiftsat/pkg/model"
)

// PostgresStore persists cache entries in a single key-value table,
// adapted from the teacher's internal/database.DB connection wrapper —
// narrowed from its general repository layer down to the one table this
// engine actually needs.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore wraps an existing connection. Callers are responsible
// for having already created the schedule_cache table (cache_key as a
// unique key, payload, created_at); this package does not create it.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, key string) (*model.Schedule, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM schedule_cache WHERE cache_key = $1`, key)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("postgres cache get: %w", err)
	}

	var schedule model.Schedule
	if err := json.Unmarshal(payload, &schedule); err != nil {
		return nil, false, fmt.Errorf("postgres cache get: decoding cached payload: %w", err)
	}
	return &schedule, true, nil
}

// Put implements Store, upserting on cache_key so a re-solve of the same
// input overwrites rather than duplicating the row.
func (s *PostgresStore) Put(ctx context.Context, key string, schedule *model.Schedule) error {
	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("postgres cache put: encoding payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedule_cache (cache_key, payload)
		VALUES ($1, $2)
		ON CONFLICT (cache_key) DO UPDATE SET payload = EXCLUDED.payload, created_at = now()
	`, key, payload)
	if err != nil {
		return fmt.Errorf("postgres cache put: %w", err)
	}
	return nil
}
