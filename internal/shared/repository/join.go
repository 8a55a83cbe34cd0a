package repository

import (
	"context"
	"fmt"
	"strings"
)

// JoinColumns projects this table under alias with the "alias_" prefix.
// Repositories whose entities carry nested references shadow it to add the
// columns of the whole graph.
func (b *Base[T, P]) JoinColumns(alias string) string {
	return b.Projection(alias, alias+"_")
}

// JoinClause LEFT JOINs this table as alias on fk.
func (b *Base[T, P]) JoinClause(alias, fk string) string {
	return fmt.Sprintf("LEFT JOIN %s %s ON %s.id = %s", b.table.Name, alias, alias, fk)
}

// MapJoined reads the relation selected through JoinColumns(alias); nil
// when the foreign key was NULL.
func (b *Base[T, P]) MapJoined(row *Row, alias string) P {
	return b.MapOptional(row.With(alias + "_"))
}

// Joinable is a repository that can be eagerly joined into another
// repository's SELECT.
type Joinable[P any] interface {
	JoinColumns(alias string) string
	JoinClause(alias, fk string) string
	MapJoined(row *Row, alias string) P
}

// Finder loads one entity by key.
type Finder[P any] interface {
	FindByID(ctx context.Context, id int64) (P, bool, error)
}

// Resolver performs separate lookups through a Finder, reading each key
// once per listing. A key with no row resolves to the zero value; the
// first lookup error is kept and later calls return zero values.
type Resolver[P any] struct {
	ctx    context.Context
	finder Finder[P]
	cache  map[int64]P
	err    error
}

func NewResolver[P any](ctx context.Context, finder Finder[P]) *Resolver[P] {
	return &Resolver[P]{ctx: ctx, finder: finder, cache: make(map[int64]P)}
}

func (r *Resolver[P]) Get(id int64) P {
	var zero P
	if r.err != nil || id == 0 {
		return zero
	}
	if v, ok := r.cache[id]; ok {
		return v
	}
	v, found, err := r.finder.FindByID(r.ctx, id)
	if err != nil {
		r.err = err
		return zero
	}
	if !found {
		v = zero
	}
	r.cache[id] = v
	return v
}

// Optional resolves a nullable foreign key.
func (r *Resolver[P]) Optional(id *int64) P {
	if id == nil {
		var zero P
		return zero
	}
	return r.Get(*id)
}

func (r *Resolver[P]) Err() error {
	return r.err
}

// Like is the case-insensitive substring predicate used by text searches.
func Like(col string) string {
	return "LOWER(" + col + ") LIKE LOWER(?)"
}

// Contains turns a search term into a LIKE pattern.
func Contains(term string) string {
	return "%" + strings.TrimSpace(term) + "%"
}

// First adapts a listing to a single-row lookup.
func First[P any](list []P, err error) (P, bool, error) {
	var zero P
	if err != nil || len(list) == 0 {
		return zero, false, err
	}
	return list[0], true, nil
}
