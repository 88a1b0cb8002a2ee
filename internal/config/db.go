package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectDB establishes a connection pool to PostgreSQL, retrying a bounded
// number of times before giving up.
func ConnectDB(ctx context.Context, cfg *Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	for attempt := 1; ; attempt++ {
		var pool *pgxpool.Pool
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				logger.Info("connected to PostgreSQL", slog.Int("attempt", attempt))
				return pool, nil
			}
			pool.Close()
		}
		if attempt >= cfg.DBConnectAttempts {
			break
		}

		logger.Warn("failed to connect to database, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.DBConnectAttempts),
			slog.Duration("retry_in", cfg.DBConnectInterval),
			slog.Any("error", err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBConnectInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", cfg.DBConnectAttempts, err)
}
