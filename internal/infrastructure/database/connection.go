package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The desk writes at most one journal row per scan.
const maxJournalConns = 2

// NewPool opens the journal pool and checks the server answers.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open journal pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	log.Printf("✅ Journal PostgreSQL connecté (%s).", cfg.ConnConfig.Database)
	return pool, nil
}

func poolConfig(dsn string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse journal dsn: %w", err)
	}
	if cfg.MaxConns > maxJournalConns {
		cfg.MaxConns = maxJournalConns
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = "qrattend"
	return cfg, nil
}
