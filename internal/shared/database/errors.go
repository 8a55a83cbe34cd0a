package database

import "fmt"

// ConnectionError reports that no usable connection could be obtained:
// pool exhausted, database unreachable or pool already closed.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
