// Package square implements the one fully built vendor connector. It
// speaks the Square Connect v2 REST API: catalog list for menu sync,
// catalog object update for item pushes, order search and order create.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"go.uber.org/zap"
)

const apiVersion = "2023-10-18"

func init() {
	pos.Register(pos.ProviderSquare, New)
}

type Connector struct {
	cfg     pos.ProviderConfig
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

func New(cfg pos.ProviderConfig, logger *zap.SugaredLogger) pos.Connector {
	return &Connector{
		cfg:     cfg,
		baseURL: pos.BaseURL(cfg.Provider, cfg.Environment),
		client:  http.DefaultClient,
		logger:  logger,
	}
}

func (c *Connector) Name() string {
	return string(pos.ProviderSquare)
}

// TestConnection probes the locations listing, the cheapest authenticated
// endpoint Square offers.
func (c *Connector) TestConnection(ctx context.Context) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v2/locations", nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return is2xx(resp.StatusCode), nil
}

func (c *Connector) SyncMenu(ctx context.Context) ([]pos.MenuItem, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v2/catalog/list", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, c.apiError(resp)
	}

	var data catalogListResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode catalog list: %w", err)
	}

	return mapCatalogObjects(data.Objects), nil
}

func (c *Connector) PushMenuItem(ctx context.Context, item pos.MenuItem) (bool, error) {
	body := catalogUpsertRequest{
		Object: catalogObject{
			ID:   item.POSID,
			Type: catalogTypeItem,
			ItemData: &itemData{
				Name:        item.Name,
				Description: item.Description,
				Variations: []itemVariation{{
					Type: "ITEM_VARIATION",
					ItemVariationData: &itemVariationData{
						PriceMoney: &money{
							Amount:   pos.MajorToMinor(item.Price),
							Currency: "USD",
						},
					},
				}},
			},
		},
	}

	resp, err := c.do(ctx, http.MethodPatch, "/v2/catalog/object", body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return is2xx(resp.StatusCode), nil
}

func (c *Connector) FetchOrders(ctx context.Context, start, end time.Time) ([]pos.Order, error) {
	search := orderSearchRequest{
		LocationIDs: []string{c.cfg.LocationID},
	}

	// the created-at window is only applied when both bounds are given;
	// otherwise Square's default listing (and its own ceiling) applies
	if !start.IsZero() && !end.IsZero() {
		search.Query = &orderSearchQuery{
			Filter: &orderSearchFilter{
				DateTimeFilter: &dateTimeFilter{
					CreatedAt: &timeRange{
						StartAt: start.Format(time.RFC3339),
						EndAt:   end.Format(time.RFC3339),
					},
				},
			},
		}
	}

	resp, err := c.do(ctx, http.MethodPost, "/v2/orders/search", search)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, c.apiError(resp)
	}

	var data orderSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode order search: %w", err)
	}

	return mapOrders(data.Orders), nil
}

func (c *Connector) PushOrder(ctx context.Context, order pos.Order) (string, error) {
	body := orderCreateRequest{
		Order: orderCreateBody{
			LocationID: c.cfg.LocationID,
			LineItems:  mapOutgoingLineItems(order.Items),
			Fulfillments: []outgoingFulfillment{{
				Type:  outgoingFulfillmentType(order.OrderType),
				State: "PROPOSED",
			}},
		},
	}

	resp, err := c.do(ctx, http.MethodPost, "/v2/orders", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return "", c.apiError(resp)
	}

	var data orderCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode order create: %w", err)
	}

	return data.Order.ID, nil
}

// do issues one authenticated call. No timeout beyond the client's own,
// no retries.
func (c *Connector) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func (c *Connector) apiError(resp *http.Response) error {
	return &pos.APIError{
		Provider:   pos.ProviderSquare,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}

func is2xx(code int) bool {
	return code >= 200 && code < 300
}
