package storage

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrStorage matches every fault reported by the storage engine.
	ErrStorage = errors.New("storage fault")

	// ErrInit matches faults raised while opening a store.
	ErrInit = errors.New("storage initialization failed")
)

// Error is a storage fault with the operation that caused it.
type Error struct {
	Op   string
	Path string
	Err  error

	init bool
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) hold for every fault and
// errors.Is(err, ErrInit) hold for initialization faults.
func (e *Error) Is(target error) bool {
	return target == ErrStorage || (e.init && target == ErrInit)
}

// IsConstraint reports whether err was caused by a violated table
// constraint, such as inserting an id that already exists.
func IsConstraint(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
