// Package repository is the database access layer. Services depend on these
// interfaces, never on SQL directly, so tests can substitute fakes and the
// store can change without touching business logic.
package repository

import (
	"context"
	"database/sql"

	"github.com/ecokan/vendo/models"
)

// UserRepository covers user persistence. Balance changes go through the
// field-level increment/decrement operations so concurrent updates compose
// inside the store instead of racing through read-modify-write in Go.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// ListByID returns at most limit users matching id. The listing endpoint
	// is scoped to the caller's own record.
	ListByID(ctx context.Context, id int64, limit int) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error)
	IncrementDeposit(ctx context.Context, id int64, amount int) (*models.User, error)
	DecrementDeposit(ctx context.Context, id int64, amount int) error
	ResetDeposit(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error

	// WithTx returns a repository bound to tx, so the same operations can run
	// inside an atomic unit.
	WithTx(tx *sql.Tx) UserRepository
}
