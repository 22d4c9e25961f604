package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness rule or
	// when a delete would orphan rows that still reference the record.
	ErrConflict = errors.New("record conflicts with existing data")
	// ErrForbidden is returned when the caller does not own the record it
	// tries to change or reference.
	ErrForbidden = errors.New("record belongs to another user")
	// ErrInvalidReference is returned when a write points at a row that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrInvalidCredentials is returned by Authenticate for any mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPassword is returned when a password cannot be hashed,
	// such as one longer than bcrypt's 72 byte limit.
	ErrInvalidPassword = errors.New("password cannot be hashed")
)

// HashError maps a password hashing failure onto ErrInvalidPassword when the
// input was at fault.
func HashError(err error) error {
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}
	return err
}

// notFound converts gorm's record-not-found into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// translateWriteError maps constraint violations raised on insert/update.
func translateWriteError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, ErrInvalidReference)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// translateDeleteError maps constraint violations raised on delete: a
// foreign key failure means the row is still in use.
func translateDeleteError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
