package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrCatalogNotLoaded = errors.New("catalog is not loaded")

type ProductPayload struct {
	ID             string   `json:"id"`
	Name           string   `json:"name" validate:"required,max=100"`
	Description    string   `json:"description" validate:"max=500"`
	Ingredients    []string `json:"ingredients"`
	Price          string   `json:"price" validate:"required"`
	Image          string   `json:"image"`
	Category       string   `json:"category" validate:"required"`
	IsDailySpecial bool     `json:"is_daily_special"`
}

func (p ProductPayload) toDomain() (*domain.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return nil, errors.New("price must be a decimal string")
	}
	if price.IsNegative() {
		return nil, errors.New("price must not be negative")
	}

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &domain.Product{
		ID:             id,
		Name:           strings.TrimSpace(p.Name),
		Description:    p.Description,
		Ingredients:    p.Ingredients,
		Price:          price,
		Image:          p.Image,
		Category:       p.Category,
		Status:         domain.StatusAvailable,
		IsDailySpecial: p.IsDailySpecial,
	}, nil
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Lists the storefront catalog, optionally filtered by category or daily specials
//	@Tags			products
//	@Produce		json
//	@Param			category		query		string	false	"Category ID, or 'all'"
//	@Param			daily_special	query		bool	false	"Only daily specials"
//	@Success		200				{array}		domain.Product
//	@Failure		503				{object}	map[string]string
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	store := app.catalogService.Store()
	if !store.Loaded() {
		app.serviceUnavailableResponse(w, r, ErrCatalogNotLoaded)
		return
	}

	if r.URL.Query().Get("daily_special") == "true" {
		if err := app.jsonRespone(w, http.StatusOK, store.DailySpecials()); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = domain.CategoryAll
	}

	if err := app.jsonRespone(w, http.StatusOK, store.ProductsByCategory(category)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createProductHandler godoc
//
//	@Summary		Create product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ProductPayload	true	"Product"
//	@Success		201		{object}	domain.Product
//	@Failure		400		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload ProductPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := payload.toDomain()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.catalogService.CreateProduct(r.Context(), product); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateProductHandler godoc
//
//	@Summary		Update product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string			true	"Product ID"
//	@Param			request		body		ProductPayload	true	"Product"
//	@Success		200			{object}	domain.Product
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products/{product_id} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	existing, err := app.productService.GetByID(r.Context(), productID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	var payload ProductPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payload.ID = productID
	product, err := payload.toDomain()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	product.Status = existing.Status

	if err := app.catalogService.UpdateProduct(r.Context(), product); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteProductHandler godoc
//
//	@Summary		Delete product
//	@Tags			products
//	@Produce		json
//	@Param			product_id	path	string	true	"Product ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products/{product_id} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	if _, err := app.productService.GetByID(r.Context(), productID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.catalogService.DeleteProduct(r.Context(), productID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type UpdateProductStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available sold_out"`
	Reason string `json:"reason"`
	UserID string `json:"user_id,omitempty"`
}

// updateProductStatusHandler godoc
//
//	@Summary		Update product status
//	@Description	Flips availability on the storefront and queues the durable write
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string						true	"Product ID"
//	@Param			request		body		UpdateProductStatusRequest	true	"Status update request"
//	@Success		202			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products/{product_id}/status [patch]
func (app *application) updateProductStatusHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		app.badRequestResponse(w, r, errors.New("product_id is required"))
		return
	}

	var req UpdateProductStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// use default user_id if not provided
	userID := req.UserID
	if userID == "" {
		userID = "admin"
	}

	if err := app.productService.UpdateStatus(r.Context(), productID, domain.ProductStatus(req.Status), req.Reason, userID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"message": "Status update queued",
	}

	if err := app.jsonRespone(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductAuditHandler godoc
//
//	@Summary		Product status audit trail
//	@Tags			products
//	@Produce		json
//	@Param			product_id	path		string	true	"Product ID"
//	@Param			limit		query		int		false	"Max records"
//	@Success		200			{array}		domain.StatusAudit
//	@Failure		500			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/products/{product_id}/audit [get]
func (app *application) getProductAuditHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	audits, err := app.productService.GetAudit(r.Context(), productID, limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}
