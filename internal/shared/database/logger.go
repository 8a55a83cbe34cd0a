package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pizzaria-erp/go-api-server/internal/config"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger adapts slog for GORM. Statements are logged through the
// request logger found in ctx, so SQL lines carry the request_id.
type GormLogger struct {
	logger        *slog.Logger
	SlowThreshold time.Duration
	HideSQL       bool
	LogLevel      gormlogger.LogLevel
}

// newLogger logs every statement at debug outside production and only
// errors and slow statements in production, without SQL text.
func newLogger(cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Info
	if cfg.IsProduction() {
		level = gormlogger.Warn
	}

	return &GormLogger{
		logger:        slog.Default(),
		SlowThreshold: defaultSlowThreshold,
		HideSQL:       cfg.IsProduction(),
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *GormLogger) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOr(ctx, l.logger).With("component", "gorm")
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.log(ctx).InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.log(ctx).WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.log(ctx).ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs one executed statement. Raw statements never produce
// gorm.ErrRecordNotFound, but Migrator lookups can, so it is ignored.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []any{"elapsed", elapsed.String(), "rows", rows}
	if !l.HideSQL {
		fields = append(fields, "sql", sql)
	}

	switch {
	case err != nil && l.LogLevel >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log(ctx).ErrorContext(ctx, "erro na consulta SQL", append(fields, "error", err)...)

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		l.log(ctx).WarnContext(ctx, "consulta SQL lenta", append(fields, "threshold", l.SlowThreshold.String())...)

	case l.LogLevel >= gormlogger.Info:
		l.log(ctx).DebugContext(ctx, "consulta SQL executada", fields...)
	}
}
