package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pizzaria-erp/go-api-server/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DefaultAcquireTimeout bounds Acquire when the pool was built without one.
const DefaultAcquireTimeout = 30 * time.Second

// DB wraps the GORM database instance and owns the connection pool lifecycle.
type DB struct {
	*gorm.DB

	sqlDB          *sql.DB
	acquireTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// New creates the pooled PostgreSQL connection
func New(cfg *config.Config) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger:                 newLogger(cfg),
		SkipDefaultTransaction: true, // each statement auto-commits on its own
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	gdb, err := gorm.Open(postgres.Open(cfg.GetDSN()), gormConfig)
	if err != nil {
		return nil, &ConnectionError{Op: "open", Err: err}
	}

	db, err := Wrap(gdb, cfg.Database.AcquireTimeout)
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	db.sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.sqlDB.SetMaxIdleConns(cfg.Database.MinIdleConns)
	db.sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.sqlDB.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Op: "ping", Err: err}
	}

	slog.Info("Conexão com o banco estabelecida",
		"host", cfg.Database.Host,
		"database", cfg.Database.Name,
		"max_open_conns", cfg.Database.MaxOpenConns,
		"min_idle_conns", cfg.Database.MinIdleConns,
		"conn_max_lifetime", cfg.Database.ConnMaxLifetime.String(),
		"conn_max_idle_time", cfg.Database.ConnMaxIdleTime.String(),
		"acquire_timeout", db.acquireTimeout.String(),
	)

	// Run migration based on configuration
	if err := Migrate(db.sqlDB, cfg); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("falha na migração: %w", err)
	}

	return db, nil
}

// Wrap adopts an already opened GORM instance. Tests use it with sqlite
// and sqlmock dialectors.
func Wrap(gdb *gorm.DB, acquireTimeout time.Duration) (*DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, &ConnectionError{Op: "open", Err: err}
	}
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	return &DB{DB: gdb, sqlDB: sqlDB, acquireTimeout: acquireTimeout}, nil
}

// Conn is a dedicated pooled connection handed out by Acquire.
type Conn struct {
	tx   *gorm.DB
	raw  *sql.Conn
	once sync.Once
}

// DB returns a GORM handle bound to this connection.
func (c *Conn) DB() *gorm.DB {
	return c.tx
}

// Release returns the connection to the pool. Safe to call more than once.
func (c *Conn) Release() {
	c.once.Do(func() {
		if err := c.raw.Close(); err != nil {
			slog.Debug("falha ao devolver conexão ao pool", "error", err)
		}
	})
}

// Acquire takes one connection from the pool. The wait is bounded by the
// configured acquire timeout; failures are reported as *ConnectionError.
func (db *DB) Acquire(ctx context.Context) (*Conn, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	waitCtx, cancel := context.WithTimeout(ctx, db.acquireTimeout)
	defer cancel()

	raw, err := db.sqlDB.Conn(waitCtx)
	if err != nil {
		return nil, &ConnectionError{Op: "acquire", Err: err}
	}

	tx := db.DB.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = raw

	return &Conn{tx: tx, raw: raw}, nil
}

// WithConn runs fn on a dedicated connection and releases it on every exit path.
func (db *DB) WithConn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn.DB())
}

// Close shuts the pool down. Subsequent calls return the first result.
func (db *DB) Close() error {
	db.closeOnce.Do(func() {
		if err := db.sqlDB.Close(); err != nil {
			db.closeErr = fmt.Errorf("falha ao encerrar o banco: %w", err)
			return
		}
		slog.Info("Pool de conexões encerrado")
	})
	return db.closeErr
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.sqlDB.PingContext(ctx); err != nil {
		return &ConnectionError{Op: "ping", Err: err}
	}
	return nil
}

// Stats reports pool usage.
func (db *DB) Stats() sql.DBStats {
	return db.sqlDB.Stats()
}

// SQL exposes the underlying pool for tooling such as migrations.
func (db *DB) SQL() *sql.DB {
	return db.sqlDB
}
