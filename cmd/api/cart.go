package main

import (
	"errors"
	"net/http"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/cart"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

const cartSessionCookie = "cart_session"

// sessionCart resolves the caller's cart from the session cookie, minting a
// new session on first contact.
func (app *application) sessionCart(w http.ResponseWriter, r *http.Request) *cart.Cart {
	cookie, err := r.Cookie(cartSessionCookie)
	if err == nil && cookie.Value != "" {
		return app.carts.Cart(cookie.Value)
	}

	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartSessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(app.config.cartTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return app.carts.Cart(sessionID)
}

type CartResponse struct {
	Items []cart.Item `json:"items"`
	Total string      `json:"total"`
	Count int         `json:"count"`
}

func cartResponse(c *cart.Cart) CartResponse {
	return CartResponse{
		Items: c.Items(),
		Total: c.Total().StringFixed(2),
		Count: c.Count(),
	}
}

// getCartHandler godoc
//
//	@Summary		Get cart
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Router			/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	c := app.sessionCart(w, r)

	if err := app.jsonRespone(w, http.StatusOK, cartResponse(c)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// addCartItemHandler godoc
//
//	@Summary		Add item to cart
//	@Description	Adds a product to the cart, merging quantity into an existing line
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddCartItemRequest	true	"Item"
//	@Success		200		{object}	CartResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	store := app.catalogService.Store()
	if !store.Loaded() {
		app.serviceUnavailableResponse(w, r, ErrCatalogNotLoaded)
		return
	}

	product, ok := store.Product(req.ProductID)
	if !ok {
		app.notFoundError(w, r, errors.New("product not found"))
		return
	}

	if !product.Available() {
		app.conflictResponse(w, r, errors.New("product is sold out"))
		return
	}

	c := app.sessionCart(w, r)
	c.Add(product, req.Quantity)

	if err := app.jsonRespone(w, http.StatusOK, cartResponse(c)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateCartItemRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// updateCartItemHandler godoc
//
//	@Summary		Adjust item quantity
//	@Description	Adds delta to the line quantity; dropping to zero removes the line
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		string					true	"Product ID"
//	@Param			request		body		UpdateCartItemRequest	true	"Quantity delta"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	map[string]string
//	@Router			/cart/items/{product_id} [patch]
func (app *application) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req UpdateCartItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := app.sessionCart(w, r)
	c.UpdateQuantity(productID, req.Delta)

	if err := app.jsonRespone(w, http.StatusOK, cartResponse(c)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeCartItemHandler godoc
//
//	@Summary		Remove item from cart
//	@Tags			cart
//	@Produce		json
//	@Param			product_id	path		string	true	"Product ID"
//	@Success		200			{object}	CartResponse
//	@Router			/cart/items/{product_id} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	c := app.sessionCart(w, r)
	c.Remove(productID)

	if err := app.jsonRespone(w, http.StatusOK, cartResponse(c)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// clearCartHandler godoc
//
//	@Summary		Clear cart
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Router			/cart [delete]
func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	c := app.sessionCart(w, r)
	c.Clear()

	if err := app.jsonRespone(w, http.StatusOK, cartResponse(c)); err != nil {
		app.internalServerError(w, r, err)
	}
}
