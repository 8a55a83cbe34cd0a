package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by writes that target a row that does not exist.
// Reads report absence through their boolean result instead.
var ErrNotFound = errors.New("repository: record not found")

// PersistenceError wraps any failure of a repository operation with the
// entity and operation that produced it.
type PersistenceError struct {
	Entity string
	Op     string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s.%s: %v", e.Entity, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func wrap(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) && pe.Entity == entity {
		return err
	}
	return &PersistenceError{Entity: entity, Op: op, Err: err}
}
