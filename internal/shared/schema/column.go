package schema

import (
	"sort"
	"strings"
)

// Audit column names shared by every table.
const (
	ColumnActive    = "ativo"
	ColumnCreatedAt = "data_cadastro"
	ColumnUpdatedAt = "ultima_modificacao"
)

// Column describes a column the reconciler may add.
// Default is used in ADD COLUMN and may be empty. Backfill is an SQL
// expression written into existing rows where the new column is NULL.
type Column struct {
	Name     string
	Type     string
	Default  string
	Backfill string
}

func ActiveColumn() Column {
	return Column{Name: ColumnActive, Type: "BOOLEAN", Default: "TRUE", Backfill: "TRUE"}
}

func CreatedAtColumn() Column {
	return Column{Name: ColumnCreatedAt, Type: "TIMESTAMP", Backfill: "CURRENT_TIMESTAMP"}
}

func UpdatedAtColumn() Column {
	return Column{Name: ColumnUpdatedAt, Type: "TIMESTAMP", Backfill: "CURRENT_TIMESTAMP"}
}

// AuditColumns is the expected set reconciled for every entity table.
func AuditColumns() []Column {
	return []Column{ActiveColumn(), CreatedAtColumn(), UpdatedAtColumn()}
}

// ColumnSet is the live column list of one table, compared case-insensitively.
// The zero value is an unknown set: the table could not be inspected and
// every column is assumed present.
type ColumnSet struct {
	names map[string]struct{}
}

func NewColumnSet(names ...string) ColumnSet {
	set := ColumnSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		set.names[strings.ToLower(n)] = struct{}{}
	}
	return set
}

// Known reports whether the set came from live metadata.
func (s ColumnSet) Known() bool {
	return s.names != nil
}

// Has reports whether the column exists. Always true for an unknown set.
func (s ColumnSet) Has(name string) bool {
	if s.names == nil {
		return true
	}
	_, ok := s.names[strings.ToLower(name)]
	return ok
}

// Missing returns the expected columns absent from the set, in input order.
func (s ColumnSet) Missing(expected []Column) []Column {
	if s.names == nil {
		return nil
	}
	var missing []Column
	for _, col := range expected {
		if !s.Has(col.Name) {
			missing = append(missing, col)
		}
	}
	return missing
}

func (s ColumnSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
