package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/pizzaria-erp/go-api-server/internal/config"
	"github.com/pizzaria-erp/go-api-server/migrations"
)

// Migrate applies the embedded base-table migrations when enabled.
// Columns added after the base schema are patched by the schema reconciler.
func Migrate(db *sql.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("⏭️  Migração automática desativada",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	m, err := NewMigrator(db)
	if err != nil {
		return err
	}

	slog.Info("🔧 Aplicando migrations", "env", cfg.App.Env)
	if err := MigrateUp(m); err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("falha ao ler versão da migração: %w", err)
	}
	slog.Info("✅ Migração concluída", "version", version, "dirty", dirty)
	return nil
}

// NewMigrator builds a golang-migrate instance over the embedded SQL files.
func NewMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir migrations embutidas: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("falha ao criar driver postgres: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar instância de migração: %w", err)
	}
	return m, nil
}

// MigrateUp runs every pending migration; no change is not an error.
func MigrateUp(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up falhou: %w", err)
	}
	return nil
}
