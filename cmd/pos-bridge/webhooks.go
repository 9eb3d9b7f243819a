package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

func (app *application) webhookHandler(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	restaurantID := chi.URLParam(r, "restaurant_id")
	if provider == "" || restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var payload map[string]interface{}
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	eventID, err := app.syncService.RecordWebhookEvent(restaurantID, provider, payload)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"event_id": eventID,
	}

	if err := app.jsonRespone(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			app.badRequestResponse(w, r, errors.New("invalid limit parameter"))
			return
		}
		limit = parsed
	}

	consume := r.URL.Query().Get("consume") == "true"

	events, err := app.syncService.PendingEvents(restaurantID, limit, consume)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, events); err != nil {
		app.internalServerError(w, r, err)
	}
}
