package repository

import "github.com/pizzaria-erp/go-api-server/internal/model"

type opKind uint8

const (
	opInsert opKind = iota + 1
	opUpdate
)

// Op is a write request: either Insert(entity) or Update(id, entity).
// Callers that know their intent build it explicitly; Infer derives it
// from the entity key once at the boundary.
type Op[P model.Entity] struct {
	kind   opKind
	id     int64
	entity P
}

func Insert[P model.Entity](entity P) Op[P] {
	return Op[P]{kind: opInsert, entity: entity}
}

func Update[P model.Entity](id int64, entity P) Op[P] {
	return Op[P]{kind: opUpdate, id: id, entity: entity}
}

// Infer maps a zero key to Insert and anything else to Update.
func Infer[P model.Entity](entity P) Op[P] {
	if id := entity.GetID(); id != 0 {
		return Update(id, entity)
	}
	return Insert(entity)
}

func (o Op[P]) IsInsert() bool {
	return o.kind == opInsert
}

func (o Op[P]) IsUpdate() bool {
	return o.kind == opUpdate
}

// ID is the target key of an Update; zero for Insert.
func (o Op[P]) ID() int64 {
	return o.id
}

func (o Op[P]) Entity() P {
	return o.entity
}

func (o Op[P]) String() string {
	switch o.kind {
	case opInsert:
		return "insert"
	case opUpdate:
		return "update"
	default:
		return "invalid"
	}
}
