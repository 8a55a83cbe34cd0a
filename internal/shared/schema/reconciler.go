package schema

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Reconciler patches missing columns into tables that already exist.
// It never fails: problems are logged and the live state is returned.
// Table creation belongs to the migrations.
type Reconciler struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewReconciler(db *gorm.DB, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{db: db, log: log.With("component", "schema")}
}

// Reconcile adds every expected column missing from table and returns the
// resulting live ColumnSet. A missing table yields an unknown set.
func (r *Reconciler) Reconcile(ctx context.Context, table string, expected ...Column) ColumnSet {
	db := r.db.WithContext(ctx)

	if !db.Migrator().HasTable(table) {
		r.log.Debug("tabela inexistente, reconciliação ignorada", "table", table)
		return ColumnSet{}
	}

	live, err := r.columns(db, table)
	if err != nil {
		r.log.Warn("falha ao ler colunas da tabela", "table", table, "error", err)
		return ColumnSet{}
	}

	missing := live.Missing(expected)
	if len(missing) == 0 {
		return live
	}

	for _, col := range missing {
		if err := r.addColumn(db, table, col); err != nil {
			r.log.Warn("falha ao adicionar coluna", "table", table, "column", col.Name, "error", err)
			continue
		}
		r.log.Info("coluna adicionada", "table", table, "column", col.Name, "type", col.Type)
	}

	refreshed, err := r.columns(db, table)
	if err != nil {
		r.log.Warn("falha ao reler colunas da tabela", "table", table, "error", err)
		return live
	}
	return refreshed
}

func (r *Reconciler) columns(db *gorm.DB, table string) (ColumnSet, error) {
	types, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return ColumnSet{}, err
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name())
	}
	return NewColumnSet(names...), nil
}

func (r *Reconciler) addColumn(db *gorm.DB, table string, col Column) error {
	ddl := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, col.Name, col.Type)
	if col.Default != "" {
		ddl += " DEFAULT " + col.Default
	}
	if err := db.Exec(ddl).Error; err != nil {
		return err
	}

	if col.Backfill == "" {
		return nil
	}
	backfill := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s IS NULL", table, col.Name, col.Backfill, col.Name)
	if err := db.Exec(backfill).Error; err != nil {
		return fmt.Errorf("backfill: %w", err)
	}
	return nil
}
