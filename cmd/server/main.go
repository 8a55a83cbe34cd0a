package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pizzaria-erp/go-api-server/internal/bootstrap"
	"github.com/pizzaria-erp/go-api-server/internal/config"
	"github.com/pizzaria-erp/go-api-server/internal/router"
	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
)

func main() {
	// Parse command line flags
	env := parseFlags()

	// Initialize logger
	logger.Setup(env)
	slog.Info("inicializando servidor", "env", env)

	// Run application
	if err := run(env); err != nil {
		slog.Error("falha na inicialização do servidor", "error", err)
		os.Exit(1)
	}

	slog.Info("servidor encerrado", "env", env)
}

// parseFlags parses command line arguments
func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()
	return *env
}

// run contains the main application logic
func run(env string) error {
	// Create root context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("falha ao carregar configuração: %w", err)
	}

	slog.Info("configuração carregada")

	// Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("falha ao conectar ao banco: %w", err)
	}

	// Build repositories; each one reconciles its table once
	repos := router.NewRepositories(ctx, db, slog.Default())

	// Setup server; the pool closes after the last request drains
	srv, err := setupServer(cfg, db, repos)
	if err != nil {
		_ = db.Close()
		return err
	}
	srv.OnShutdown(db.Close)

	// Start server with graceful shutdown
	return startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout)
}

// setupServer initializes and configures the HTTP server
func setupServer(cfg *config.Config, db *database.DB, repos *router.Repositories) (*bootstrap.Server, error) {
	ginEngine, err := bootstrap.NewBootstrap(cfg).SetupEngine()
	if err != nil {
		return nil, err
	}

	// Setup application-specific routes
	router.Setup(ginEngine, cfg, db, repos)

	slog.Info("servidor configurado",
		"env", cfg.App.Env,
		"db_max_open_conns", cfg.Database.MaxOpenConns,
		"db_acquire_timeout", cfg.Database.AcquireTimeout,
	)

	return bootstrap.New(cfg, ginEngine), nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		serverErrors <- srv.Start()
	}()

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either server error or interrupt signal
	select {
	case err := <-serverErrors:
		// Server failed to start or stopped unexpectedly
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(fmt.Errorf("erro no servidor: %w", err), srv.Shutdown(ctx))
		}
		return srv.Shutdown(ctx)

	case sig := <-quit:
		// Received shutdown signal
		slog.Info("sinal de encerramento recebido", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		// Attempt graceful shutdown
		slog.Info("encerrando servidor...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("encerramento forçado do servidor: %w", err)
		}
		return nil
	}
}
