// Package storage opens the configured persistence backend and hands
// out the repository set over it.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/config"
	"github.com/prn-tf/hearth/internal/repository"
	"github.com/prn-tf/hearth/internal/repository/memory"
	"github.com/prn-tf/hearth/internal/repository/postgres"
	"github.com/prn-tf/hearth/internal/repository/sqlite"
)

// Backend bundles the repositories of one storage backend together with
// its transaction manager and lifecycle.
type Backend struct {
	Accounts  repository.AccountRepository
	Listings  repository.ListingRepository
	Amenities repository.AmenityRepository
	Reviews   repository.ReviewRepository
	Tx        repository.TxManager

	closeFn func() error
}

// Close releases the backend's resources.
func (b *Backend) Close() error {
	if b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}

// Open connects to the backend named by the configuration and runs its
// migrations. Supported drivers: "postgres", "sqlite" and "memory".
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Backend, error) {
	switch cfg.Driver {
	case "postgres":
		return openPostgres(ctx, cfg, logger)
	case "sqlite":
		return openSQLite(ctx, cfg, logger)
	case "memory":
		return openMemory(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Backend, error) {
	db, err := postgres.NewDB(ctx, postgres.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		User:         cfg.User,
		Password:     cfg.Password,
		Database:     cfg.Database,
		SSLMode:      cfg.SSLMode,
		MaxOpenConns: cfg.MaxOpenConns,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres backend: %w", err)
	}

	return &Backend{
		Accounts:  postgres.NewAccountRepository(db),
		Listings:  postgres.NewListingRepository(db),
		Amenities: postgres.NewAmenityRepository(db),
		Reviews:   postgres.NewReviewRepository(db),
		Tx:        postgres.NewTxManager(db),
		closeFn:   db.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Backend, error) {
	sqliteCfg := sqlite.DefaultConfig(cfg.Path)
	if cfg.JournalMode != "" {
		sqliteCfg.JournalMode = cfg.JournalMode
	}
	if cfg.BusyTimeout > 0 {
		sqliteCfg.BusyTimeout = cfg.BusyTimeout
	}
	if cfg.SynchronousMode != "" {
		sqliteCfg.SynchronousMode = cfg.SynchronousMode
	}

	db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite backend: %w", err)
	}

	return &Backend{
		Accounts:  sqlite.NewAccountRepository(db),
		Listings:  sqlite.NewListingRepository(db),
		Amenities: sqlite.NewAmenityRepository(db),
		Reviews:   sqlite.NewReviewRepository(db),
		Tx:        sqlite.NewTxManager(db),
		closeFn:   db.Close,
	}, nil
}

func openMemory() *Backend {
	store := memory.NewStore()
	return &Backend{
		Accounts:  memory.NewAccountRepository(store),
		Listings:  memory.NewListingRepository(store),
		Amenities: memory.NewAmenityRepository(store),
		Reviews:   memory.NewReviewRepository(store),
		Tx:        store.TxManager(),
	}
}
