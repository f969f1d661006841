package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-ledger/internal/common"
)

// InitDatabase opens the configured store and migrates it. inmem forces a private
// in-memory SQLite database; otherwise DSN selects Postgres and SQLitePath is the fallback.
// The returned cleanup closes every connection.
func InitDatabase(ctx context.Context, cfg common.DatabaseConfig, inmem bool, logger *slog.Logger) (*DB, func(), error) {
	var (
		db  *DB
		err error
	)
	switch {
	case inmem:
		db, err = OpenSQLite(InMemoryDSN("seed-"+uuid.NewString()), logger)
	case cfg.DSN != "":
		db, err = Open(ctx, Config{
			DSN:              cfg.DSN,
			MaxConns:         cfg.MaxConns,
			MinConns:         cfg.MinConns,
			MaxConnLifetime:  cfg.MaxConnLifetime,
			MaxConnIdleTime:  cfg.MaxConnIdleTime,
			DialTimeout:      cfg.DialTimeout,
			StatementTimeout: cfg.StatementTimeout,
		}, logger)
	default:
		db, err = OpenSQLite(cfg.SQLitePath, logger)
	}
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() { Close(db, logger) }
	if err := HealthCheck(ctx, db, cfg.DialTimeout, logger); err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := Migrate(ctx, db, logger); err != nil {
		cleanup()
		return nil, nil, err
	}
	return db, cleanup, nil
}
