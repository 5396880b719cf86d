package main

import (
	"errors"
	"net/http"
	"strconv"
)

// listOrdersHandler godoc
//
//	@Summary		List recent orders
//	@Tags			orders
//	@Produce		json
//	@Param			limit	query		int	false	"Max orders"
//	@Success		200		{array}		domain.Order
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	limit := int64(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	orders, err := app.orderService.ListRecent(r.Context(), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}
