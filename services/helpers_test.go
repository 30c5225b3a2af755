package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecokan/vendo/database"
	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/repository"
)

// newTestDB opens a throwaway SQLite file with the real migrations applied.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

// seedUser inserts a user with the given balance and returns it.
// bcrypt.MinCost keeps the suite fast; verification does not care about cost.
func seedUser(t *testing.T, repo repository.UserRepository, username, password string, role models.Role, deposit int) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Deposit:      deposit,
		Role:         role,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

// seedProduct inserts a product owned by sellerID and returns it.
func seedProduct(t *testing.T, repo repository.ProductRepository, sellerID int64, name string, cost, amount int) *models.Product {
	t.Helper()

	product := &models.Product{
		ProductName:     name,
		Cost:            cost,
		AmountAvailable: amount,
		SellerID:        sellerID,
	}
	require.NoError(t, repo.Create(context.Background(), product))

	return product
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
