package main

import (
	"net/http"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"github.com/go-chi/chi"
)

type PutConfigRequest struct {
	Provider    string `json:"provider" validate:"required,oneof=square toast clover lightspeed"`
	APIKey      string `json:"api_key" validate:"required"`
	MerchantID  string `json:"merchant_id"`
	LocationID  string `json:"location_id"`
	Environment string `json:"environment" validate:"required,oneof=sandbox production"`
	WebhookURL  string `json:"webhook_url"`
}

func (app *application) getConfigHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	cfg := app.syncService.GetConfig(restaurantID)
	if cfg == nil {
		app.notFoundError(w, r, ErrInvalidID)
		return
	}

	// never echo credentials back
	masked := *cfg
	masked.APIKey = ""

	if err := app.jsonRespone(w, http.StatusOK, masked); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) putConfigHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req PutConfigRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cfg := pos.ProviderConfig{
		Provider:    pos.Provider(req.Provider),
		APIKey:      req.APIKey,
		MerchantID:  req.MerchantID,
		LocationID:  req.LocationID,
		Environment: pos.Environment(req.Environment),
		WebhookURL:  req.WebhookURL,
	}

	if err := app.syncService.SaveConfig(r.Context(), restaurantID, cfg); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"restaurant_id": restaurantID,
		"provider":      req.Provider,
		"status":        "configured",
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteConfigHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.syncService.RemoveConfig(r.Context(), restaurantID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) testConnectionHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	connected := app.syncService.TestProvider(r.Context(), restaurantID)

	response := map[string]bool{
		"connected": connected,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
