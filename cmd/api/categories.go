package main

import (
	"errors"
	"net/http"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/service"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type CategoryPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required,max=50"`
	Emoji string `json:"emoji"`
}

// listCategoriesHandler godoc
//
//	@Summary		List categories
//	@Description	Lists the storefront category tabs, "all" first
//	@Tags			categories
//	@Produce		json
//	@Success		200	{array}		domain.Category
//	@Failure		503	{object}	map[string]string
//	@Router			/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	store := app.catalogService.Store()
	if !store.Loaded() {
		app.serviceUnavailableResponse(w, r, ErrCatalogNotLoaded)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, store.Categories()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createCategoryHandler godoc
//
//	@Summary		Create category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CategoryPayload	true	"Category"
//	@Success		201		{object}	domain.Category
//	@Failure		400		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/categories [post]
func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload CategoryPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if payload.ID == domain.CategoryAll {
		app.badRequestResponse(w, r, errors.New("category id 'all' is reserved"))
		return
	}

	category := &domain.Category{
		ID:    payload.ID,
		Name:  payload.Name,
		Emoji: payload.Emoji,
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}

	if err := app.catalogService.CreateCategory(r.Context(), category); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, category); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCategoryHandler godoc
//
//	@Summary		Update category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			category_id	path		string			true	"Category ID"
//	@Param			request		body		CategoryPayload	true	"Category"
//	@Success		200			{object}	domain.Category
//	@Failure		400			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/categories/{category_id} [put]
func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "category_id")

	var payload CategoryPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	category := &domain.Category{
		ID:    categoryID,
		Name:  payload.Name,
		Emoji: payload.Emoji,
	}

	if err := app.catalogService.UpdateCategory(r.Context(), category); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, category); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCategoryHandler godoc
//
//	@Summary		Delete category
//	@Description	Refuses to delete a category that still has products; the 409 body lists their names
//	@Tags			categories
//	@Produce		json
//	@Param			category_id	path	string	true	"Category ID"
//	@Success		204
//	@Failure		409	{object}	map[string]interface{}
//	@Security		ApiKeyAuth
//	@Router			/categories/{category_id} [delete]
func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "category_id")

	if err := app.catalogService.DeleteCategory(r.Context(), categoryID); err != nil {
		var inUse *service.CategoryInUseError
		if errors.As(err, &inUse) {
			app.logger.Warnw("category delete refused", "category_id", categoryID, "products", len(inUse.Products))

			body := map[string]interface{}{
				"error":    "category still has products",
				"products": inUse.Products,
			}
			if err := writeJson(w, http.StatusConflict, body); err != nil {
				app.internalServerError(w, r, err)
			}
			return
		}

		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
