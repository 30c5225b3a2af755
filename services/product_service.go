package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ecokan/vendo/database"
	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
	"github.com/ecokan/vendo/pkg/coins"
	"github.com/ecokan/vendo/repository"
)

// Receipt is the outcome of a purchase: what was charged, for which product,
// and the coins refunded when the sale was clamped to the remaining stock.
type Receipt struct {
	Total     int    `json:"total"`
	Product   string `json:"product"`
	ProductID int64  `json:"productId"`
	Change    []int  `json:"change"`
}

// ProductService covers the catalog and the purchase transaction.
type ProductService interface {
	Create(ctx context.Context, sellerID int64, req *models.CreateProductRequest) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	// Update and Delete are owner-only; a missing product is reported the
	// same way as someone else's product.
	Update(ctx context.Context, callerID, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, callerID, id int64) error
	// Buy atomically charges the buyer and decrements stock. When the
	// requested amount exceeds the remaining stock the sale is clamped to
	// the whole stock and the difference comes back as change.
	Buy(ctx context.Context, buyerID int64, req *models.BuyRequest) (*Receipt, error)
}

type productService struct {
	db          *sql.DB
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewProductService takes the raw connection as well as the repositories:
// Buy opens its own transaction and rebinds both repositories to it.
func NewProductService(db *sql.DB, productRepo repository.ProductRepository, userRepo repository.UserRepository) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func (s *productService) Create(ctx context.Context, sellerID int64, req *models.CreateProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	product := &models.Product{
		ProductName:     req.ProductName,
		Cost:            *req.Cost,
		AmountAvailable: *req.AmountAvailable,
		SellerID:        sellerID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx, listLimit)
}

func (s *productService) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: Product with id %d does not exist", pkg.ErrNotFound, id)
		}
		return nil, err
	}

	return product, nil
}

func (s *productService) Update(ctx context.Context, callerID, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := s.requireOwner(ctx, callerID, id); err != nil {
		return nil, err
	}

	product, err := s.productRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) Delete(ctx context.Context, callerID, id int64) error {
	if err := s.requireOwner(ctx, callerID, id); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, id)
}

// Buy runs the whole purchase inside one transaction so a failure at any step
// leaves both the buyer's balance and the product's stock untouched.
//
// Step order matters and is part of the contract:
// buyer exists → buyer has any deposit → product exists → product has stock →
// buyer can afford the requested amount → clamp to stock → apply both updates.
// The affordability check uses the requested amount even when the sale will
// be clamped down.
func (s *productService) Buy(ctx context.Context, buyerID int64, req *models.BuyRequest) (*Receipt, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var receipt *Receipt

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.userRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		user, err := users.GetByID(ctx, buyerID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				return fmt.Errorf("%w: User not found", pkg.ErrNotFound)
			}
			return err
		}

		if user.Deposit == 0 {
			return fmt.Errorf("%w: User has no deposit", pkg.ErrServer)
		}

		product, err := products.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				return fmt.Errorf("%w: Product with id %d does not exist", pkg.ErrNotFound, req.ProductID)
			}
			return err
		}

		if product.AmountAvailable == 0 {
			return fmt.Errorf("%w: Product is out of stock", pkg.ErrNotFound)
		}

		requestedCost := req.Amount * product.Cost
		availableValue := product.AmountAvailable * product.Cost

		if user.Deposit < requestedCost {
			return fmt.Errorf("%w: Insufficient coins to purchase product", pkg.ErrServer)
		}

		// surplus < 0 means the request exceeds the stock's total value:
		// sell everything that is left and refund the difference as coins.
		// surplus == 0 is the exact-stock purchase, no change.
		surplus := availableValue - requestedCost

		sold, charged := req.Amount, requestedCost
		change := []int{}
		if surplus < 0 {
			sold, charged = product.AmountAvailable, availableValue
			change = coins.Change(-surplus)
		}

		if err := products.DecrementStock(ctx, product.ID, sold); err != nil {
			return err
		}
		if err := users.DecrementDeposit(ctx, user.ID, charged); err != nil {
			return err
		}

		receipt = &Receipt{
			Total:     charged,
			Product:   product.ProductName,
			ProductID: product.ID,
			Change:    change,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

func (s *productService) requireOwner(ctx context.Context, callerID, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: You do not have access to this resource", pkg.ErrNoAccess)
		}
		return err
	}

	if product.SellerID != callerID {
		return fmt.Errorf("%w: You do not have access to this resource", pkg.ErrNoAccess)
	}

	return nil
}
