package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateImportTaskRequest struct {
	SpreadsheetID  string `json:"spreadsheet_id" validate:"required"`
	RestaurantName string `json:"restaurant_name"`
}

// createImportTaskHandler godoc
//
//	@Summary		Queue catalog import
//	@Description	Queues a full catalog replacement from a Google Sheet
//	@Tags			import
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateImportTaskRequest	true	"Import request"
//	@Success		202		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		503		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/catalog/import [post]
func (app *application) createImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	if app.config.googleCreds == "" {
		app.serviceUnavailableResponse(w, r, errors.New("catalog import is not configured"))
		return
	}

	var req CreateImportTaskRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	taskID, err := app.importService.CreateImportTask(r.Context(), req.SpreadsheetID, req.RestaurantName)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"task_id": taskID.Hex(),
		"status":  "queued",
	}

	if err := app.jsonRespone(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getImportTaskHandler godoc
//
//	@Summary		Import task status
//	@Tags			import
//	@Produce		json
//	@Param			task_id	path		string	true	"Task ID"
//	@Success		200		{object}	domain.ImportTask
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/catalog/import/{task_id} [get]
func (app *application) getImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "task_id"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid task_id"))
		return
	}

	task, err := app.importService.GetTaskStatus(r.Context(), taskID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, task); err != nil {
		app.internalServerError(w, r, err)
	}
}
