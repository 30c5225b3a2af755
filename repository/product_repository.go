package repository

import (
	"context"
	"database/sql"

	"github.com/ecokan/vendo/models"
)

// ProductRepository covers product persistence. Stock is decremented with a
// field-level operation for the same reason deposits are.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, limit int) ([]models.Product, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	DecrementStock(ctx context.Context, id int64, amount int) error
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) ProductRepository
}
