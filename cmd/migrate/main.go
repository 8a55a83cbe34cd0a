package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"

	"github.com/pizzaria-erp/go-api-server/internal/config"
	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
)

func main() {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	logger.Setup(*env)

	if err := run(*env, args); err != nil {
		slog.Error("migração falhou", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func run(env string, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("falha ao carregar configuração: %w", err)
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("falha ao abrir conexão: %w", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		return err
	}

	switch args[0] {
	case "up":
		if err := database.MigrateUp(m); err != nil {
			return err
		}
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down falhou: %w", err)
		}
	case "force":
		if len(args) < 2 {
			return errors.New("uso: migrate force <versão>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("versão inválida %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force falhou: %w", err)
		}
	case "version":
	default:
		printUsage()
		return fmt.Errorf("comando desconhecido %q", args[0])
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		slog.Info("nenhuma migração aplicada")
		return nil
	}
	if err != nil {
		return fmt.Errorf("falha ao ler versão: %w", err)
	}
	slog.Info("versão do esquema", "version", version, "dirty", dirty)
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Uso: migrate [-env local] <comando>

Comandos:
  up               aplica todas as migrações pendentes
  down             desfaz a última migração
  force <versão>   marca a versão sem executar (corrige estado dirty)
  version          mostra a versão atual`)
}
