package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
	"github.com/ecokan/vendo/services"
)

// ProductHandler serves the /products endpoints.
type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// POST /products — sellers only; the session user becomes the owner.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	product, err := h.productService.Create(r.Context(), session.UserID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, product)
}

// List godoc
// GET /products — public.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, products)
}

// Get godoc
// GET /products/{id} — public.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, product)
}

// Buy godoc
// POST /products/buy — buyers only.
// Body: { "productId": 1, "amount": 2 }
func (h *ProductHandler) Buy(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	var req models.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	receipt, err := h.productService.Buy(r.Context(), session.UserID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, receipt)
}

// Update godoc
// PUT /products/{id} — owning seller only, partial update.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	product, err := h.productService.Update(r.Context(), session.UserID, id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, product)
}

// Delete godoc
// DELETE /products/{id} — owning seller only.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	if err := h.productService.Delete(r.Context(), session.UserID, id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
