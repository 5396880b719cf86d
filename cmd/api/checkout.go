package main

import (
	"errors"
	"net/http"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/checkout"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/google/uuid"
)

type CheckoutRequest struct {
	Customer       string `json:"customer" validate:"required,max=100"`
	Fulfillment    string `json:"fulfillment" validate:"required,oneof=DELIVERY PICKUP"`
	Address        string `json:"address" validate:"max=200"`
	IdempotencyKey string `json:"idempotency_key"`
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	WhatsAppURL string `json:"whatsapp_url"`
	Total       string `json:"total"`
}

// checkoutHandler godoc
//
//	@Summary		Checkout
//	@Description	Persists the order and returns the WhatsApp handoff link. The cart survives any failure.
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CheckoutRequest	true	"Checkout request"
//	@Success		201		{object}	CheckoutResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		503		{object}	map[string]string
//	@Router			/checkout [post]
func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// retries from the same client reuse the key, so a double-tap on the
	// submit button cannot create two orders
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	c := app.sessionCart(w, r)

	result, err := app.checkout.Submit(r.Context(), c, checkout.Request{
		Customer:       req.Customer,
		Fulfillment:    domain.Fulfillment(req.Fulfillment),
		Address:        req.Address,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		var ve *checkout.ValidationError
		if errors.As(err, &ve) {
			app.logger.Warnw("checkout rejected", "code", ve.Code)
			writeJsonError(w, http.StatusBadRequest, ve.Code)
			return
		}

		var pe *checkout.PersistenceError
		if errors.As(err, &pe) {
			app.serviceUnavailableResponse(w, r, err)
			return
		}

		app.internalServerError(w, r, err)
		return
	}

	response := CheckoutResponse{
		OrderID:     result.OrderID,
		WhatsAppURL: result.HandoffURL,
		Total:       result.Total,
	}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
