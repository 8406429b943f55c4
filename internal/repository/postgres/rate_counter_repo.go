package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fieldcheck/internal/port"
)

// RateCounterRepo is a port.RateCounterStore shared by every server process.
type RateCounterRepo struct {
	db *sqlx.DB
}

// NewRateCounterRepo creates a new PostgreSQL-backed rate counter store.
func NewRateCounterRepo(db *sqlx.DB) *RateCounterRepo {
	return &RateCounterRepo{db: db}
}

var _ port.RateCounterStore = (*RateCounterRepo)(nil)

type rateCounterRow struct {
	Count       int       `db:"count"`
	WindowStart time.Time `db:"window_start"`
}

func (r *RateCounterRepo) Get(ctx context.Context, key string) (port.RateCounter, bool, error) {
	var row rateCounterRow
	err := r.db.GetContext(ctx, &row,
		"SELECT count, window_start FROM rate_limit_counters WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.RateCounter{}, false, nil
		}
		return port.RateCounter{}, false, fmt.Errorf("rateCounterRepo.Get: %w", err)
	}
	return port.RateCounter{Count: row.Count, WindowStart: row.WindowStart}, true, nil
}

// Acquire resets, increments or refuses in a single upsert. A refused call
// leaves the count at limit+1, so count <= limit means the call was admitted.
func (r *RateCounterRepo) Acquire(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (port.RateCounter, error) {
	var row rateCounterRow
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO rate_limit_counters AS c (key, count, window_start)
		 VALUES ($1, 1, $2)
		 ON CONFLICT (key) DO UPDATE SET
		   count = CASE
		     WHEN $2::timestamptz - c.window_start > make_interval(secs => $3::double precision) THEN 1
		     WHEN c.count > $4 THEN c.count
		     ELSE c.count + 1
		   END,
		   window_start = CASE
		     WHEN $2::timestamptz - c.window_start > make_interval(secs => $3::double precision) THEN $2::timestamptz
		     ELSE c.window_start
		   END
		 RETURNING count, window_start`,
		key, now, window.Seconds(), limit)
	if err != nil {
		return port.RateCounter{}, fmt.Errorf("rateCounterRepo.Acquire: %w", err)
	}
	return port.RateCounter{
		Count:       row.Count,
		WindowStart: row.WindowStart,
		Allowed:     row.Count <= limit,
	}, nil
}

func (r *RateCounterRepo) Reset(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM rate_limit_counters WHERE key = $1", key)
	if err != nil {
		return fmt.Errorf("rateCounterRepo.Reset: %w", err)
	}
	return nil
}

// Sweep deletes counters whose window ended before now.
func (r *RateCounterRepo) Sweep(ctx context.Context, window time.Duration, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM rate_limit_counters WHERE window_start < $1", now.Add(-window))
	if err != nil {
		return 0, fmt.Errorf("rateCounterRepo.Sweep: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rateCounterRepo.Sweep rows: %w", err)
	}
	return int(n), nil
}
