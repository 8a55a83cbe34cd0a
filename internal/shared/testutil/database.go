package testutil

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	"github.com/pizzaria-erp/go-api-server/migrations"
)

var dsnSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// SetupTestDB creates an in-memory SQLite database for testing, loaded with
// the base tables of the embedded migrations. The database is private to
// the test and shared by every pooled connection of it.
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db := OpenTestDB(t)
	for _, stmt := range baseTablesDDL(t) {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("Failed to migrate test database: %v\n%s", err, stmt)
		}
	}
	return db
}

// OpenTestDB opens an empty in-memory SQLite database.
func OpenTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := "file:" + dsnSanitizer.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent), // Silent mode for tests
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	db, err := database.Wrap(gdb, 0)
	if err != nil {
		t.Fatalf("Failed to wrap test database: %v", err)
	}
	t.Cleanup(func() { CleanupTestDB(t, db) })
	return db
}

// SetupMockDB returns a database backed by sqlmock and the postgres dialector,
// so expectations are written against the production SQL ($n placeholders).
func SetupMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("Failed to open gorm over sqlmock: %v", err)
	}

	db, err := database.Wrap(gdb, 0)
	if err != nil {
		t.Fatalf("Failed to wrap mock database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// ExpectTableMissing answers the reconciler's table lookup with "no table",
// which leaves the repository with an unknown column set.
func ExpectTableMissing(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`information_schema\.tables`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
}

// CleanupTestDB closes the test database
func CleanupTestDB(t *testing.T, db *database.DB) {
	t.Helper()

	if err := db.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
}

// TruncateTable truncates a table for test isolation
func TruncateTable(t *testing.T, db *database.DB, tableName string) {
	t.Helper()

	if err := db.Exec("DELETE FROM " + tableName).Error; err != nil {
		t.Fatalf("Failed to truncate table %s: %v", tableName, err)
	}
}

// DropColumn removes a column to simulate a table created before it existed.
func DropColumn(t *testing.T, db *database.DB, table, column string) {
	t.Helper()

	if err := db.Exec("ALTER TABLE " + table + " DROP COLUMN " + column).Error; err != nil {
		t.Fatalf("Failed to drop %s.%s: %v", table, column, err)
	}
}

// RejectStatements makes every raw statement starting with prefix fail,
// e.g. a DDL the database user is not allowed to run.
func RejectStatements(t *testing.T, db *database.DB, prefix string) {
	t.Helper()

	err := db.Callback().Raw().Before("gorm:raw").Register("testutil:reject", func(tx *gorm.DB) {
		if strings.HasPrefix(tx.Statement.SQL.String(), prefix) {
			_ = tx.AddError(fmt.Errorf("statement rejected: %s", prefix))
		}
	})
	if err != nil {
		t.Fatalf("Failed to register rejecting callback: %v", err)
	}
}

// baseTablesDDL rewrites the PostgreSQL migrations into SQLite statements.
func baseTablesDDL(t *testing.T) []string {
	t.Helper()

	files, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}

	var stmts []string
	for _, name := range files {
		content, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			t.Fatalf("Failed to read migration %s: %v", name, err)
		}
		ddl := strings.ReplaceAll(string(content), "BIGSERIAL PRIMARY KEY", "INTEGER PRIMARY KEY AUTOINCREMENT")
		for _, stmt := range strings.Split(ddl, ";") {
			if stmt = strings.TrimSpace(stmt); stmt != "" {
				stmts = append(stmts, stmt)
			}
		}
	}
	return stmts
}
