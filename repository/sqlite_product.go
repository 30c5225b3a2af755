package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ecokan/vendo/database"
	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
)

type sqliteProductRepo struct {
	db database.TxQuerier
}

// NewSQLiteProductRepo builds the SQLite-backed ProductRepository.
func NewSQLiteProductRepo(db database.TxQuerier) ProductRepository {
	return &sqliteProductRepo{db: db}
}

func (r *sqliteProductRepo) WithTx(tx *sql.Tx) ProductRepository {
	return &sqliteProductRepo{db: tx}
}

func (r *sqliteProductRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (product_name, cost, amount_available, seller_id)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		product.ProductName,
		product.Cost,
		product.AmountAvailable,
		product.SellerID,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *sqliteProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT id, product_name, cost, amount_available, seller_id
		FROM products WHERE id = ?`

	return r.scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqliteProductRepo) List(ctx context.Context, limit int) ([]models.Product, error) {
	query := `
		SELECT id, product_name, cost, amount_available, seller_id
		FROM products ORDER BY id LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Cost, &p.AmountAvailable, &p.SellerID); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}

	return products, nil
}

// Update applies only the fields present in req. The SET clause is built
// dynamically; req is validated before it gets here.
func (r *sqliteProductRepo) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	sets := []string{}
	args := []any{}

	if req.ProductName != nil {
		sets = append(sets, "product_name = ?")
		args = append(args, *req.ProductName)
	}
	if req.Cost != nil {
		sets = append(sets, "cost = ?")
		args = append(args, *req.Cost)
	}
	if req.AmountAvailable != nil {
		sets = append(sets, "amount_available = ?")
		args = append(args, *req.AmountAvailable)
	}
	if len(sets) == 0 {
		return nil, pkg.ErrBadRequest
	}

	query := fmt.Sprintf(`
		UPDATE products SET %s WHERE id = ?
		RETURNING id, product_name, cost, amount_available, seller_id`,
		strings.Join(sets, ", "))
	args = append(args, id)

	return r.scanProduct(r.db.QueryRowContext(ctx, query, args...))
}

func (r *sqliteProductRepo) DecrementStock(ctx context.Context, id int64, amount int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET amount_available = amount_available - ? WHERE id = ?`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check decrement result: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteProductRepo) scanProduct(row *sql.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.ProductName, &product.Cost, &product.AmountAvailable, &product.SellerID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	return product, nil
}
