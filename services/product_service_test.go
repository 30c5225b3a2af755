package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
	"github.com/ecokan/vendo/repository"
)

func newProductFixture(t *testing.T) (ProductService, repository.UserRepository, repository.ProductRepository) {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	productRepo := repository.NewSQLiteProductRepo(db.Conn)

	return NewProductService(db.Conn, productRepo, userRepo), userRepo, productRepo
}

func TestBuyWithinStock(t *testing.T) {
	svc, userRepo, productRepo := newProductFixture(t)
	ctx := context.Background()

	seller := seedUser(t, userRepo, "seller", "pw", models.RoleSeller, 0)
	buyer := seedUser(t, userRepo, "buyer", "pw", models.RoleBuyer, 100)
	product := seedProduct(t, productRepo, seller.ID, "cola", 20, 10)

	receipt, err := svc.Buy(ctx, buyer.ID, &models.BuyRequest{ProductID: product.ID, Amount: 3})
	require.NoError(t, err)

	assert.Equal(t, 60, receipt.Total)
	assert.Equal(t, "cola", receipt.Product)
	assert.Equal(t, product.ID, receipt.ProductID)
	assert.Empty(t, receipt.Change, "full fulfilment returns no change")

	after, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.AmountAvailable)

	balance, err := userRepo.GetByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, balance.Deposit)
}

func TestBuyClampsToStock(t *testing.T) {
	svc, userRepo, productRepo := newProductFixture(t)
	ctx := context.Background()

	seller := seedUser(t, userRepo, "seller", "pw", models.RoleSeller, 0)
	buyer := seedUser(t, userRepo, "buyer", "pw", models.RoleBuyer, 100)
	product := seedProduct(t, productRepo, seller.ID, "chips", 20, 2)

	// 5 asked, 2 in stock: the whole stock is sold, the uncovered 60 comes
	// back as coins.
	receipt, err := svc.Buy(ctx, buyer.ID, &models.BuyRequest{ProductID: product.ID, Amount: 5})
	require.NoError(t, err)

	assert.Equal(t, 40, receipt.Total)
	assert.Equal(t, []int{50, 10}, receipt.Change)

	after, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.AmountAvailable)

	balance, err := userRepo.GetByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, balance.Deposit, "only the clamped total is charged")
}

func TestBuyOutOfStock(t *testing.T) {
	svc, userRepo, productRepo := newProductFixture(t)
	ctx := context.Background()

	seller := seedUser(t, userRepo, "seller", "pw", models.RoleSeller, 0)
	buyer := seedUser(t, userRepo, "buyer", "pw", models.RoleBuyer, 100)
	product := seedProduct(t, productRepo, seller.ID, "gum", 5, 0)

	_, err := svc.Buy(ctx, buyer.ID, &models.BuyRequest{ProductID: product.ID, Amount: 1})
	require.ErrorIs(t, err, pkg.ErrNotFound)
	assert.Contains(t, err.Error(), "Product is out of stock")
}

func TestBuyNoDeposit(t *testing.T) {
	svc, userRepo, productRepo := newProductFixture(t)
	ctx := context.Background()

	seller := seedUser(t, userRepo, "seller", "pw", models.RoleSeller, 0)
	buyer := seedUser(t, userRepo, "buyer", "pw", models.RoleBuyer, 0)
	product := seedProduct(t, productRepo, seller.ID, "cola", 20, 10)

	_, err := svc.Buy(ctx, buyer.ID, &models.BuyRequest{ProductID: product.ID, Amount: 1})
	require.ErrorIs(t, err, pkg.ErrServer)
	assert.Contains(t, err.Error(), "User has no deposit")
}

func TestBuyInsufficientFundsForRequestedAmount(t *testing.T) {
	svc, userRepo, productRepo := newProductFixture(t)
	ctx := context.Background()

	seller := seedUser(t, userRepo, "seller", "pw", models.RoleSeller, 0)
	buyer := seedUser(t, userRepo, "buyer", "pw", models.RoleBuyer, 50)
	product := seedProduct(t, productRepo, seller.ID, "cola", 20, 2)

	// Affordability is judged on the requested 3 units (60) even though the
	// stock would clamp the sale down to 40.
	_, err := svc.Buy(ctx, buyer.ID, &models.BuyRequest{ProductID: product.ID, Amount: 3})
	require.ErrorIs(t, err, pkg.ErrServer)
	assert.Contains(t, err.Error(), "Insufficient coins to purchase product")

	balance, err := userRepo.GetByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance.Deposit, "failed purchase must not charge")

	after, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.AmountAvailable, "failed purchase must not touch stock")
}

func TestBuyUnknownProduct(t *testing.T) {
	svc, userRepo, _ := newProductFixture(t)

	buyer := seedUser(t, userRepo, "buyer", "pw", models.RoleBuyer, 100)

	_, err := svc.Buy(context.Background(), buyer.ID, &models.BuyRequest{ProductID: 42, Amount: 1})
	require.ErrorIs(t, err, pkg.ErrNotFound)
	assert.Contains(t, err.Error(), "Product with id 42 does not exist")
}

func TestBuyRejectsInvalidRequest(t *testing.T) {
	svc, userRepo, _ := newProductFixture(t)

	buyer := seedUser(t, userRepo, "buyer", "pw", models.RoleBuyer, 100)

	for _, req := range []*models.BuyRequest{
		{ProductID: 0, Amount: 1},
		{ProductID: 1, Amount: 0},
		{ProductID: 1, Amount: -2},
	} {
		_, err := svc.Buy(context.Background(), buyer.ID, req)
		require.ErrorIs(t, err, pkg.ErrBadRequest)
		assert.Contains(t, err.Error(), "Invalid parameters, kindly check the productId and the amount")
	}
}

func TestUpdateOwnerOnly(t *testing.T) {
	svc, userRepo, productRepo := newProductFixture(t)
	ctx := context.Background()

	owner := seedUser(t, userRepo, "owner", "pw", models.RoleSeller, 0)
	other := seedUser(t, userRepo, "other", "pw", models.RoleSeller, 0)
	product := seedProduct(t, productRepo, owner.ID, "cola", 20, 10)

	req := &models.UpdateProductRequest{Cost: intPtr(25)}

	_, err := svc.Update(ctx, other.ID, product.ID, req)
	require.ErrorIs(t, err, pkg.ErrNoAccess)
	assert.Contains(t, err.Error(), "You do not have access to this resource")

	updated, err := svc.Update(ctx, owner.ID, product.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Cost)
	assert.Equal(t, "cola", updated.ProductName)
}

func TestUpdateMissingProductReadsAsNoAccess(t *testing.T) {
	svc, userRepo, _ := newProductFixture(t)

	seller := seedUser(t, userRepo, "seller", "pw", models.RoleSeller, 0)

	_, err := svc.Update(context.Background(), seller.ID, 99, &models.UpdateProductRequest{Cost: intPtr(25)})
	require.ErrorIs(t, err, pkg.ErrNoAccess, "a missing product is indistinguishable from someone else's")
}

func TestUpdateRejectsEmptyPayload(t *testing.T) {
	svc, userRepo, productRepo := newProductFixture(t)

	owner := seedUser(t, userRepo, "owner", "pw", models.RoleSeller, 0)
	product := seedProduct(t, productRepo, owner.ID, "cola", 20, 10)

	_, err := svc.Update(context.Background(), owner.ID, product.ID, &models.UpdateProductRequest{})
	require.ErrorIs(t, err, pkg.ErrBadRequest)
	assert.Contains(t, err.Error(), "Invalid Parameters")
}

func TestDeleteOwnerOnly(t *testing.T) {
	svc, userRepo, productRepo := newProductFixture(t)
	ctx := context.Background()

	owner := seedUser(t, userRepo, "owner", "pw", models.RoleSeller, 0)
	other := seedUser(t, userRepo, "other", "pw", models.RoleSeller, 0)
	product := seedProduct(t, productRepo, owner.ID, "cola", 20, 10)

	require.ErrorIs(t, svc.Delete(ctx, other.ID, product.ID), pkg.ErrNoAccess)

	require.NoError(t, svc.Delete(ctx, owner.ID, product.ID))

	_, err := svc.Get(ctx, product.ID)
	require.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestCreateAndGetProduct(t *testing.T) {
	svc, userRepo, _ := newProductFixture(t)
	ctx := context.Background()

	seller := seedUser(t, userRepo, "seller", "pw", models.RoleSeller, 0)

	created, err := svc.Create(ctx, seller.ID, &models.CreateProductRequest{
		ProductName:     "water",
		Cost:            intPtr(15),
		AmountAvailable: intPtr(4),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, seller.ID, created.SellerID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Create(ctx, seller.ID, &models.CreateProductRequest{
		ProductName:     "bad",
		Cost:            intPtr(13), // not a coin multiple
		AmountAvailable: intPtr(1),
	})
	require.ErrorIs(t, err, pkg.ErrBadRequest)
}
