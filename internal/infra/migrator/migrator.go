package migrator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose для применения миграций при старте сервиса
type Migrator struct {
	db             *sql.DB
	migrationsPath string
	logger         Logger
}

// New создаёт новый мигратор
func New(db *sql.DB, migrationsPath string, logger Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return &Migrator{
		db:             db,
		migrationsPath: migrationsPath,
		logger:         logger,
	}, nil
}

// Run применяет все pending миграции
func (m *Migrator) Run(ctx context.Context) error {
	m.logger.Info("Applying database migrations from %s...", m.migrationsPath)

	if err := goose.UpContext(ctx, m.db, m.migrationsPath); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("get migrations version: %w", err)
	}

	m.logger.Info("Migrations applied successfully, current version: %d", version)
	return nil
}
