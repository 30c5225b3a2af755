package models

import "fmt"

// Product is an item stocked by a seller. Cost is in coin units and must be a
// multiple of 5 so every surplus stays representable in coins. Quantity is
// mutated only by the owning seller or by a purchase transaction.
type Product struct {
	ID              int64  `json:"id"`
	ProductName     string `json:"productName"`
	Cost            int    `json:"cost"`
	AmountAvailable int    `json:"amountAvailable"`
	SellerID        int64  `json:"sellerId"`
}

// CreateProductRequest is the seller's listing payload.
type CreateProductRequest struct {
	ProductName     string `json:"productName"`
	Cost            *int   `json:"cost"`
	AmountAvailable *int   `json:"amountAvailable"`
}

func (r *CreateProductRequest) Validate() error {
	if r.ProductName == "" || r.Cost == nil || r.AmountAvailable == nil {
		return fmt.Errorf("Invalid parameters to create a product")
	}
	if *r.Cost <= 0 || *r.Cost%5 != 0 {
		return fmt.Errorf("Invalid parameters to create a product")
	}
	if *r.AmountAvailable < 0 {
		return fmt.Errorf("Invalid parameters to create a product")
	}
	return nil
}

// UpdateProductRequest is a partial update; nil fields are left untouched.
type UpdateProductRequest struct {
	ProductName     *string `json:"productName"`
	Cost            *int    `json:"cost"`
	AmountAvailable *int    `json:"amountAvailable"`
}

// Empty reports whether the request carries no fields at all.
func (r *UpdateProductRequest) Empty() bool {
	return r.ProductName == nil && r.Cost == nil && r.AmountAvailable == nil
}

func (r *UpdateProductRequest) Validate() error {
	if r.Empty() {
		return fmt.Errorf("Invalid Parameters")
	}
	if r.ProductName != nil && *r.ProductName == "" {
		return fmt.Errorf("Invalid parameters to update product")
	}
	if r.Cost != nil && (*r.Cost <= 0 || *r.Cost%5 != 0) {
		return fmt.Errorf("Invalid parameters to update product")
	}
	if r.AmountAvailable != nil && *r.AmountAvailable < 0 {
		return fmt.Errorf("Invalid parameters to update product")
	}
	return nil
}

// BuyRequest asks to purchase amount units of a product.
type BuyRequest struct {
	ProductID int64 `json:"productId"`
	Amount    int   `json:"amount"`
}

func (r *BuyRequest) Validate() error {
	if r.ProductID <= 0 || r.Amount <= 0 {
		return fmt.Errorf("Invalid parameters, kindly check the productId and the amount")
	}
	return nil
}
