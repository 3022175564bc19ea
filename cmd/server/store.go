package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	postgresRepo "github.com/iho/studentledger/internal/adapter/repository/postgres"
	sqliteRepo "github.com/iho/studentledger/internal/adapter/repository/sqlite"
	"github.com/iho/studentledger/internal/infrastructure/config"
	"github.com/iho/studentledger/internal/infrastructure/postgres"
	"github.com/iho/studentledger/internal/infrastructure/sqlite"
	"github.com/iho/studentledger/internal/usecase"
)

// store bundles the repositories of the selected driver.
type store struct {
	driver       string
	txManager    usecase.TxManager
	transactions usecase.TransactionRepository
	users        usecase.UserRepository
	idGen        usecase.IDGenerator
	ping         func(ctx context.Context) error
	close        func()
}

// openStore connects to the configured driver and applies its migrations.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*store, error) {
	idGen := postgresRepo.NewULIDGenerator()

	switch cfg.StoreDriver {
	case config.DriverSQLite:
		if err := sqlite.RunMigrations(cfg.SQLitePath, logger); err != nil {
			return nil, fmt.Errorf("sqlite migrations: %w", err)
		}

		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite store")

		return &store{
			driver:       config.DriverSQLite,
			txManager:    sqliteRepo.NewTxManager(db),
			transactions: sqliteRepo.NewTransactionRepository(db, idGen),
			users:        sqliteRepo.NewUserRepository(db),
			idGen:        idGen,
			ping:         db.PingContext,
			close:        func() { db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.ConnectWithRetry(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseConnectTimeout,
		}, cfg.DatabaseConnectTimeout, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres migrations: %w", err)
		}

		return &store{
			driver:       config.DriverPostgres,
			txManager:    postgresRepo.NewTxManager(pool),
			transactions: postgresRepo.NewTransactionRepository(pool, idGen),
			users:        postgresRepo.NewUserRepository(pool),
			idGen:        idGen,
			ping:         pool.Ping,
			close:        pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
