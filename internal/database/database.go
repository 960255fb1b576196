// Package database opens the long-lived persistence handle selected by
// configuration and wraps it in a repository.Store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"catalog-admin/internal/config"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/repository/memory"
	"catalog-admin/internal/repository/mongodb"
	"catalog-admin/internal/repository/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Open connects to the configured backend, verifies it is reachable and
// prepares its schema. Any failure is returned so the caller can abort startup.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverMemory:
		logger.Warn("Using in-memory store, data will not survive a restart")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (repository.Store, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(timeoutCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := mongodb.NewStore(client, client.Database(cfg.MongoDatabase))
	if err := store.EnsureIndexes(timeoutCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	return store, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (repository.Store, error) {
	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	timeoutCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(timeoutCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := RunMigrations(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
	)
	return postgres.NewStore(db), nil
}
