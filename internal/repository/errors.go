package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Storage error taxonomy. Repository methods translate driver errors into
// these sentinels at the boundary; callers match with errors.Is.
var (
	// ErrNotFound means the operation targeted a non-existent row.
	ErrNotFound = errors.New("record not found")
	// ErrValidation means input violated a schema constraint (missing
	// required field, uniqueness violation, invalid foreign key).
	ErrValidation = errors.New("validation failed")
	// ErrSchema means table creation or migration failed.
	ErrSchema = errors.New("schema migration failed")
	// ErrConnection means the database is unreachable or a session could
	// not be acquired.
	ErrConnection = errors.New("database connection failed")
)

// translate maps a gorm error to the storage taxonomy, keeping op as
// context. Unknown errors pass through wrapped.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%s: %w: %v", op, ErrValidation, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
