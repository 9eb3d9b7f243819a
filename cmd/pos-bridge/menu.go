package main

import (
	"errors"
	"net/http"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/service"
	"github.com/go-chi/chi"
)

type PushMenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
}

func (app *application) createMenuSyncHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	taskID, err := app.syncService.EnqueueMenuSync(r.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, service.ErrNoProviderConfigured) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"task_id": taskID,
		"status":  "queued",
	}

	if err := app.jsonRespone(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	snapshot, err := app.syncService.GetMenuSnapshot(r.Context(), restaurantID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, snapshot); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) pushMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	itemID := chi.URLParam(r, "item_id")
	if restaurantID == "" || itemID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req PushMenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item := pos.MenuItem{
		POSID:       itemID,
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Available:   req.Available,
	}

	ok, err := app.syncService.PushMenuItem(r.Context(), restaurantID, item)
	if err != nil {
		if errors.Is(err, service.ErrNoProviderConfigured) || errors.Is(err, pos.ErrNotImplemented) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]bool{
		"updated": ok,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
