package logger

import (
	"log/slog"
	"os"
)

// Setup configures the global slog logger based on environment.
// LOG_LEVEL (debug, info, warn, error) overrides the environment default.
func Setup(env string) {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	json := false

	switch env {
	case "production", "prod":
		// Production: JSON format
		json = true
	case "local", "dev", "development":
		// Development: Text format, debug level (SQL included)
		opts.Level = slog.LevelDebug
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw)); err == nil {
			opts.Level = level
		}
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if json {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler).With("env", env))

	slog.Info("logger inicializado", "level", opts.Level.Level().String())
}
