// Package db owns the Domain Store connection lifecycle: pool setup and
// schema migrations. Connection faults at startup are the only place where
// the process is allowed to die loudly.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func MustConnect(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("не удалось создать пул подключений к базе данных")
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("база данных недоступна")
	}
	log.Info().Msg("подключение к базе данных успешно установлено")
	return pool
}

// ApplyMigrations накатывает вшитые SQL-миграции через отдельное
// database/sql подключение, чтобы не трогать основной пул.
func ApplyMigrations(dsn string) error {
	mdb, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer mdb.Close()

	driver, err := migratepgx.WithInstance(mdb, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("create pgx driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
