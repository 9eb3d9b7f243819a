package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/service"
	"github.com/go-chi/chi"
)

type CreateOrderPullRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

type PushOrderRequest struct {
	OrderNumber string           `json:"order_number"`
	Customer    pos.CustomerInfo `json:"customer"`
	Items       []pos.OrderItem  `json:"items" validate:"required,min=1"`
	TotalAmount float64          `json:"total_amount" validate:"gte=0"`
	OrderType   string           `json:"order_type" validate:"required,oneof=dine-in takeaway delivery"`
	TableNumber string           `json:"table_number"`
}

func (app *application) createOrderPullHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	// body is optional; absent means the vendor's default window
	var req CreateOrderPullRequest
	if r.ContentLength > 0 {
		if err := readJson(w, r, &req); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	taskID, err := app.syncService.EnqueueOrderPull(r.Context(), restaurantID, req.StartTime, req.EndTime)
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

func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	limit := int64(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			app.badRequestResponse(w, r, errors.New("invalid limit parameter"))
			return
		}
		limit = parsed
	}

	orders, err := app.syncService.ListOrders(r.Context(), restaurantID, limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) pushOrderHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req PushOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order := pos.Order{
		OrderNumber: req.OrderNumber,
		Customer:    req.Customer,
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
		OrderType:   pos.OrderType(req.OrderType),
		TableNumber: req.TableNumber,
	}

	posOrderID, err := app.syncService.PushOrder(r.Context(), restaurantID, order)
	if err != nil {
		if errors.Is(err, service.ErrNoProviderConfigured) || errors.Is(err, pos.ErrNotImplemented) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"pos_order_id": posOrderID,
		"status":       "pushed",
	}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
