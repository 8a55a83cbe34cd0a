package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/database"
	"github.com/pizzaria-erp/go-api-server/internal/shared/logger"
	"github.com/pizzaria-erp/go-api-server/internal/shared/schema"
)

// Deps are the collaborators shared by every repository.
type Deps struct {
	DB     *database.DB
	Logger *slog.Logger
	Now    func() time.Time // defaults to UTC wall clock at microsecond precision
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// Table describes the physical table behind a repository.
type Table struct {
	Name     string          // physical table name
	Alias    string          // alias used in generated SELECTs
	Entity   string          // name used in errors and logs
	OrderBy  string          // natural sort, without alias
	Columns  []string        // writable data columns, excluding id and audit columns
	Expected []schema.Column // extra columns reconciled on top of the audit set
}

// Query is a SELECT built by a repository finder. Empty fields fall back
// to the plain single-table projection, the table alias and natural sort.
type Query struct {
	Name    string // operation name used in errors
	Select  string
	From    string
	Where   string
	Args    []any
	OrderBy string
	Limit   int
}

// Base implements the persistence pattern shared by entity repositories:
// by-name mapping, Insert/Update writes with audit timestamps, hard and soft delete.
type Base[T any, P interface {
	*T
	model.Entity
}] struct {
	db      *database.DB
	log     *slog.Logger
	now     func() time.Time
	table   Table
	columns schema.ColumnSet
	read    func(row *Row, entity P)
	write   func(entity P) []any
}

// New reconciles the table's audit and expected columns and returns a
// repository that branches on the resulting column set. read fills the
// data fields of an entity from a row; write returns the values of
// table.Columns in order.
func New[T any, P interface {
	*T
	model.Entity
}](ctx context.Context, deps Deps, table Table, read func(*Row, P), write func(P) []any) *Base[T, P] {
	if table.Alias == "" {
		table.Alias = table.Name
	}
	if table.Entity == "" {
		table.Entity = table.Name
	}
	if table.OrderBy == "" {
		table.OrderBy = "id"
	}

	log := deps.logger().With("repository", table.Entity)
	expected := append(schema.AuditColumns(), table.Expected...)
	columns := schema.NewReconciler(deps.DB.DB, log).Reconcile(ctx, table.Name, expected...)
	if !columns.Known() {
		log.Debug("colunas desconhecidas, assumindo esquema completo", "table", table.Name)
	}

	now := deps.Now
	if now == nil {
		now = Clock
	}

	return &Base[T, P]{
		db:      deps.DB,
		log:     log,
		now:     now,
		table:   table,
		columns: columns,
		read:    read,
		write:   write,
	}
}

// Clock is the default repository clock.
func Clock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (b *Base[T, P]) Table() Table {
	return b.table
}

// Columns is the live column set captured at construction.
func (b *Base[T, P]) Columns() schema.ColumnSet {
	return b.columns
}

func (b *Base[T, P]) DB() *database.DB {
	return b.db
}

func (b *Base[T, P]) Now() time.Time {
	return b.now()
}

// Logger prefers the request logger carried by ctx.
func (b *Base[T, P]) Logger(ctx context.Context) *slog.Logger {
	return logger.FromContextOr(ctx, b.log)
}

// Projection lists id, the present data columns and the present audit
// columns of alias, each renamed to prefix+column.
func (b *Base[T, P]) Projection(alias, prefix string) string {
	cols := make([]string, 0, len(b.table.Columns)+4)
	cols = append(cols, "id")
	for _, c := range b.table.Columns {
		if b.columns.Has(c) {
			cols = append(cols, c)
		}
	}
	for _, c := range []string{schema.ColumnActive, schema.ColumnCreatedAt, schema.ColumnUpdatedAt} {
		if b.columns.Has(c) {
			cols = append(cols, c)
		}
	}

	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s.%s AS %s%s", alias, c, prefix, c)
	}
	return strings.Join(parts, ", ")
}

// Map builds a new entity from row.
func (b *Base[T, P]) Map(row *Row) P {
	e := P(new(T))
	row.Record(e.Meta())
	b.read(row, e)
	return e
}

// MapOptional is Map for LEFT JOINed relations: nil when the joined id is NULL.
func (b *Base[T, P]) MapOptional(row *Row) P {
	if row.IsNull("id") {
		return nil
	}
	return b.Map(row)
}

func (b *Base[T, P]) build(q Query) string {
	sel := q.Select
	if sel == "" {
		sel = b.Projection(b.table.Alias, "")
	}
	from := q.From
	if from == "" {
		from = b.table.Name + " " + b.table.Alias
	}
	order := q.OrderBy
	if order == "" {
		order = b.table.Alias + "." + b.table.OrderBy + ", " + b.table.Alias + ".id"
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(sel)
	sb.WriteString(" FROM ")
	sb.WriteString(from)
	if q.Where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.Where)
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(order)
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}
	return sb.String()
}

// Select runs q and maps every row; join, when not nil, reads eagerly
// joined relations from the same row. Rows that fail to map are logged and
// skipped. The result is never nil.
func (b *Base[T, P]) Select(ctx context.Context, q Query, join func(*Row, P)) ([]P, error) {
	op := q.Name
	if op == "" {
		op = "select"
	}

	var raw []map[string]any
	err := b.db.WithConn(ctx, func(tx *gorm.DB) error {
		rows, err := tx.Raw(b.build(q), q.Args...).Rows()
		if err != nil {
			return err
		}
		raw, err = scanRows(rows)
		return err
	})
	if err != nil {
		return nil, wrap(b.table.Entity, op, err)
	}

	out := make([]P, 0, len(raw))
	for i, values := range raw {
		row := NewRow(values)
		e := b.Map(row)
		if join != nil {
			join(row, e)
		}
		if err := row.Err(); err != nil {
			b.Logger(ctx).Warn("linha ignorada no mapeamento",
				"entity", b.table.Entity, "op", op, "row", i, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Get returns the first row of q; false when there is none.
func (b *Base[T, P]) Get(ctx context.Context, q Query, join func(*Row, P)) (P, bool, error) {
	q.Limit = 1
	list, err := b.Select(ctx, q, join)
	if err != nil || len(list) == 0 {
		return nil, false, err
	}
	return list[0], true, nil
}

// FindAll lists the table in natural order.
func (b *Base[T, P]) FindAll(ctx context.Context) ([]P, error) {
	return b.Select(ctx, Query{Name: "findAll"}, nil)
}

// FindByID reports false, without error, when no row has id.
func (b *Base[T, P]) FindByID(ctx context.Context, id int64) (P, bool, error) {
	return b.Get(ctx, Query{
		Name:  "findById",
		Where: b.table.Alias + ".id = ?",
		Args:  []any{id},
	}, nil)
}

// Find runs a criteria search over the plain projection.
func (b *Base[T, P]) Find(ctx context.Context, where string, args ...any) ([]P, error) {
	return b.Select(ctx, Query{Name: "find", Where: where, Args: args}, nil)
}

// Save infers Insert or Update from the entity key.
func (b *Base[T, P]) Save(ctx context.Context, entity P) (P, error) {
	if entity == nil {
		return nil, wrap(b.table.Entity, "save", errors.New("nil entity"))
	}
	return b.Apply(ctx, Infer(entity))
}

// Apply executes a write and returns the same entity, populated with the
// generated key and audit values.
func (b *Base[T, P]) Apply(ctx context.Context, op Op[P]) (P, error) {
	e := op.Entity()
	if e == nil {
		return nil, wrap(b.table.Entity, op.String(), errors.New("nil entity"))
	}

	var err error
	switch {
	case op.IsInsert():
		err = b.insert(ctx, e)
	case op.IsUpdate():
		err = b.update(ctx, op.ID(), e)
	default:
		err = errors.New("invalid operation")
	}
	if err != nil {
		return nil, wrap(b.table.Entity, op.String(), err)
	}
	return e, nil
}

func (b *Base[T, P]) dataColumns(e P) ([]string, []any, error) {
	values := b.write(e)
	if len(values) != len(b.table.Columns) {
		return nil, nil, fmt.Errorf("write returned %d values for %d columns", len(values), len(b.table.Columns))
	}
	cols := make([]string, 0, len(values)+3)
	args := make([]any, 0, len(values)+3)
	for i, c := range b.table.Columns {
		if b.columns.Has(c) {
			cols = append(cols, c)
			args = append(args, values[i])
		}
	}
	return cols, args, nil
}

func (b *Base[T, P]) insert(ctx context.Context, e P) error {
	meta := e.Meta()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = b.now()
	}
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = meta.CreatedAt
	}
	meta.Active = true

	cols, args, err := b.dataColumns(e)
	if err != nil {
		return err
	}
	if b.columns.Has(schema.ColumnActive) {
		cols = append(cols, schema.ColumnActive)
		args = append(args, meta.Active)
	}
	if b.columns.Has(schema.ColumnCreatedAt) {
		cols = append(cols, schema.ColumnCreatedAt)
		args = append(args, meta.CreatedAt)
	}
	if b.columns.Has(schema.ColumnUpdatedAt) {
		cols = append(cols, schema.ColumnUpdatedAt)
		args = append(args, meta.UpdatedAt)
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		b.table.Name, strings.Join(cols, ", "), placeholders(len(cols)))
	if len(cols) == 0 {
		stmt = "INSERT INTO " + b.table.Name + " DEFAULT VALUES RETURNING id"
	}

	var id int64
	err = b.db.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Raw(stmt, args...).Row().Scan(&id)
	})
	if err != nil {
		return err
	}
	e.SetID(id)

	b.Logger(ctx).Debug("registro inserido", "entity", b.table.Entity, "id", id)
	return nil
}

// update writes the data columns and a fresh ultima_modificacao. The audit
// values carried by e are ignored: the new timestamp is the clock, or one
// microsecond past the stored value when the clock has not moved past it.
func (b *Base[T, P]) update(ctx context.Context, id int64, e P) error {
	meta := e.Meta()
	meta.ID = id

	cols, args, err := b.dataColumns(e)
	if err != nil {
		return err
	}
	sets := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c+" = ?")
	}
	stamped := b.columns.Has(schema.ColumnUpdatedAt)
	if stamped {
		sets = append(sets, schema.ColumnUpdatedAt+" = ?")
	}
	if len(sets) == 0 {
		return errors.New("no writable columns")
	}

	returning := []string{"id"}
	for _, c := range []string{schema.ColumnActive, schema.ColumnCreatedAt} {
		if b.columns.Has(c) {
			returning = append(returning, c)
		}
	}

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? RETURNING %s",
		b.table.Name, strings.Join(sets, ", "), strings.Join(returning, ", "))

	now := b.now()
	var raw []map[string]any
	err = b.db.WithConn(ctx, func(tx *gorm.DB) error {
		if stamped {
			stored, found, err := b.storedUpdatedAt(tx, id)
			if err != nil {
				return err
			}
			if !found {
				return ErrNotFound
			}
			if !now.After(stored) {
				now = stored.Add(time.Microsecond)
			}
			args = append(args, now)
		}
		args = append(args, id)

		rows, err := tx.Raw(stmt, args...).Rows()
		if err != nil {
			return err
		}
		raw, err = scanRows(rows)
		return err
	})
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return ErrNotFound
	}

	row := NewRow(raw[0])
	meta.Active = row.Bool(schema.ColumnActive, true)
	meta.CreatedAt = row.Time(schema.ColumnCreatedAt)
	if err := row.Err(); err != nil {
		return err
	}
	if stamped {
		meta.UpdatedAt = now
	}

	b.Logger(ctx).Debug("registro atualizado", "entity", b.table.Entity, "id", id)
	return nil
}

// storedUpdatedAt reads the persisted ultima_modificacao of id.
func (b *Base[T, P]) storedUpdatedAt(tx *gorm.DB, id int64) (time.Time, bool, error) {
	rows, err := tx.Raw("SELECT "+schema.ColumnUpdatedAt+" FROM "+b.table.Name+" WHERE id = ?", id).Rows()
	if err != nil {
		return time.Time{}, false, err
	}
	raw, err := scanRows(rows)
	if err != nil || len(raw) == 0 {
		return time.Time{}, false, err
	}
	row := NewRow(raw[0])
	stored := row.Time(schema.ColumnUpdatedAt)
	return stored, true, row.Err()
}

// DeleteByID removes the row unconditionally. Deleting a missing id is not an error.
func (b *Base[T, P]) DeleteByID(ctx context.Context, id int64) error {
	_, err := b.Exec(ctx, "deleteById", "DELETE FROM "+b.table.Name+" WHERE id = ?", id)
	return err
}

// Deactivate is the soft delete: ativo = FALSE and a refreshed ultima_modificacao.
func (b *Base[T, P]) Deactivate(ctx context.Context, id int64) error {
	if !b.columns.Has(schema.ColumnActive) {
		return wrap(b.table.Entity, "deactivate", fmt.Errorf("column %s absent from %s", schema.ColumnActive, b.table.Name))
	}
	set, args := b.Stamped(schema.ColumnActive+" = ?", false)
	_, err := b.Exec(ctx, "deactivate", "UPDATE "+b.table.Name+" SET "+set+" WHERE id = ?", append(args, id)...)
	return err
}

// Stamped extends the SET list of a bulk UPDATE with ultima_modificacao
// when the table has it, appending the clock value to args.
func (b *Base[T, P]) Stamped(set string, args ...any) (string, []any) {
	if !b.columns.Has(schema.ColumnUpdatedAt) {
		return set, args
	}
	return set + ", " + schema.ColumnUpdatedAt + " = ?", append(args, b.now())
}

// Exec runs a write statement on its own connection and returns the
// number of affected rows.
func (b *Base[T, P]) Exec(ctx context.Context, op, stmt string, args ...any) (int64, error) {
	var affected int64
	err := b.db.WithConn(ctx, func(tx *gorm.DB) error {
		res := tx.Exec(stmt, args...)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, wrap(b.table.Entity, op, err)
	}
	return affected, nil
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
