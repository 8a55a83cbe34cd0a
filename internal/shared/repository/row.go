package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/schema"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Row is one result row addressed by column name. Getters record the first
// conversion failure and return zero values afterwards; check Err once the
// entity is filled. A Row obtained through With reads prefixed columns of a
// joined relation and shares the error state of its parent.
type Row struct {
	values map[string]any
	prefix string
	err    *error
}

// NewRow builds a Row from a column→value map; names are matched case-insensitively.
func NewRow(values map[string]any) *Row {
	normalized := make(map[string]any, len(values))
	for k, v := range values {
		normalized[strings.ToLower(k)] = v
	}
	var err error
	return &Row{values: normalized, err: &err}
}

// With returns a view over the columns selected under prefix.
func (r *Row) With(prefix string) *Row {
	return &Row{values: r.values, prefix: r.prefix + prefix, err: r.err}
}

func (r *Row) Err() error {
	return *r.err
}

// Has reports whether the column was selected at all.
func (r *Row) Has(col string) bool {
	_, ok := r.values[r.key(col)]
	return ok
}

// IsNull reports whether the column is absent or NULL.
func (r *Row) IsNull(col string) bool {
	v, ok := r.values[r.key(col)]
	return !ok || v == nil
}

func (r *Row) key(col string) string {
	return r.prefix + strings.ToLower(col)
}

func (r *Row) fail(col string, v any, err error) {
	if *r.err == nil {
		*r.err = fmt.Errorf("column %s: cannot convert %T(%v): %w", r.key(col), v, v, err)
	}
}

func (r *Row) raw(col string) (any, bool) {
	if *r.err != nil {
		return nil, false
	}
	v, ok := r.values[r.key(col)]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *Row) Int64(col string) int64 {
	v, ok := r.raw(col)
	if !ok {
		return 0
	}
	n, err := toInt64(v)
	if err != nil {
		r.fail(col, v, err)
	}
	return n
}

// NullInt64 returns nil for NULL or absent columns.
func (r *Row) NullInt64(col string) *int64 {
	v, ok := r.raw(col)
	if !ok {
		return nil
	}
	n, err := toInt64(v)
	if err != nil {
		r.fail(col, v, err)
		return nil
	}
	return &n
}

func (r *Row) Int(col string) int {
	return int(r.Int64(col))
}

func (r *Row) String(col string) string {
	v, ok := r.raw(col)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(s)
	}
}

// Bool returns def when the column is absent or NULL.
func (r *Row) Bool(col string, def bool) bool {
	v, ok := r.raw(col)
	if !ok {
		return def
	}
	b, err := toBool(v)
	if err != nil {
		r.fail(col, v, err)
	}
	return b
}

// Time returns the zero time for NULL or absent columns.
func (r *Row) Time(col string) time.Time {
	v, ok := r.raw(col)
	if !ok {
		return time.Time{}
	}
	t, err := toTime(v)
	if err != nil {
		r.fail(col, v, err)
	}
	return t
}

func (r *Row) NullTime(col string) *time.Time {
	if _, ok := r.raw(col); !ok {
		return nil
	}
	t := r.Time(col)
	if *r.err != nil {
		return nil
	}
	return &t
}

// Decimal returns zero for NULL or absent columns.
func (r *Row) Decimal(col string) decimal.Decimal {
	d := r.NullDecimal(col)
	return d.Decimal
}

func (r *Row) NullDecimal(col string) decimal.NullDecimal {
	v, ok := r.raw(col)
	if !ok {
		return decimal.NullDecimal{}
	}
	var d decimal.NullDecimal
	if b, isBytes := v.([]byte); isBytes {
		v = string(b)
	}
	if err := d.Scan(v); err != nil {
		r.fail(col, v, err)
		return decimal.NullDecimal{}
	}
	return d
}

// Record fills the key and audit columns. Absent audit columns keep their
// documented defaults: active, zero timestamps.
func (r *Row) Record(rec *model.Record) {
	rec.ID = r.Int64("id")
	rec.Active = r.Bool(schema.ColumnActive, true)
	rec.CreatedAt = r.Time(schema.ColumnCreatedAt)
	rec.UpdatedAt = r.Time(schema.ColumnUpdatedAt)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("not an integer")
		}
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type")
	}
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case []byte:
		return strconv.ParseBool(string(b))
	case string:
		return strconv.ParseBool(b)
	default:
		return false, fmt.Errorf("unsupported type")
	}
}

func toTime(v any) (time.Time, error) {
	var s string
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case []byte:
		s = string(t)
	case string:
		s = t
	default:
		return time.Time{}, fmt.Errorf("unsupported type")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time layout")
}

// scanRows drains rows into column→value maps with sqlx.MapScan.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		values := make(map[string]any)
		if err := sqlx.MapScan(rows, values); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
