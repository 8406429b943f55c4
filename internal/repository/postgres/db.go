// Package postgres implements the job store and the shared rate counter
// store on PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"fieldcheck/internal/config"
)

const (
	connectTimeout  = 10 * time.Second
	connMaxIdleTime = 5 * time.Minute
)

// NewDB opens a pgx-backed pool and verifies it with a ping bounded by
// connectTimeout.
func NewDB(ctx context.Context, cfg *config.DBConfig, logger *zap.Logger) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres at %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if logger != nil {
		logger.Named("postgres").Info("connected",
			zap.String("host", cfg.Host),
			zap.String("database", cfg.Name),
			zap.Int("max_open", cfg.MaxOpen),
		)
	}
	return db, nil
}
