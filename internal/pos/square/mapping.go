package square

import (
	"strconv"
	"strings"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
)

const catalogTypeItem = "ITEM"

// Wire shapes. Only the fields the mapping reads are declared; Square
// sends far more and the decoder drops the rest.

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

type catalogListResponse struct {
	Objects []catalogObject `json:"objects"`
}

type catalogObject struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	ItemData *itemData `json:"item_data,omitempty"`
}

type itemData struct {
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	CategoryID         string          `json:"category_id,omitempty"`
	SkipModifierScreen bool            `json:"skip_modifier_screen,omitempty"`
	Variations         []itemVariation `json:"variations,omitempty"`
}

type itemVariation struct {
	Type              string             `json:"type"`
	ItemVariationData *itemVariationData `json:"item_variation_data,omitempty"`
}

type itemVariationData struct {
	PriceMoney *money `json:"price_money,omitempty"`
}

type catalogUpsertRequest struct {
	Object catalogObject `json:"object"`
}

type orderSearchRequest struct {
	LocationIDs []string          `json:"location_ids"`
	Query       *orderSearchQuery `json:"query,omitempty"`
}

type orderSearchQuery struct {
	Filter *orderSearchFilter `json:"filter,omitempty"`
}

type orderSearchFilter struct {
	DateTimeFilter *dateTimeFilter `json:"date_time_filter,omitempty"`
}

type dateTimeFilter struct {
	CreatedAt *timeRange `json:"created_at,omitempty"`
}

type timeRange struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type orderSearchResponse struct {
	Orders []wireOrder `json:"orders"`
}

type wireOrder struct {
	ID           string            `json:"id"`
	OrderNumber  string            `json:"order_number,omitempty"`
	State        string            `json:"state,omitempty"`
	CreatedAt    string            `json:"created_at,omitempty"`
	TotalMoney   *money            `json:"total_money,omitempty"`
	LineItems    []wireLineItem    `json:"line_items,omitempty"`
	Fulfillments []wireFulfillment `json:"fulfillments,omitempty"`
	Tenders      []wireTender      `json:"tenders,omitempty"`
}

type wireLineItem struct {
	CatalogObjectID string             `json:"catalog_object_id"`
	Name            string             `json:"name"`
	Quantity        string             `json:"quantity"`
	BasePriceMoney  *money             `json:"base_price_money,omitempty"`
	TotalMoney      *money             `json:"total_money,omitempty"`
	Modifiers       []wireItemModifier `json:"modifiers,omitempty"`
	Note            string             `json:"note,omitempty"`
}

type wireItemModifier struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Name            string `json:"name"`
	TotalMoney      *money `json:"total_money,omitempty"`
}

type wireFulfillment struct {
	Type          string             `json:"type,omitempty"`
	PickupDetails *wirePickupDetails `json:"pickup_details,omitempty"`
}

type wirePickupDetails struct {
	Recipient *wireRecipient `json:"recipient,omitempty"`
	Note      string         `json:"note,omitempty"`
}

type wireRecipient struct {
	DisplayName  string `json:"display_name,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

type wireTender struct {
	Type        string                 `json:"type,omitempty"`
	CardDetails map[string]interface{} `json:"card_details,omitempty"`
}

type orderCreateRequest struct {
	Order orderCreateBody `json:"order"`
}

type orderCreateBody struct {
	LocationID   string                `json:"location_id"`
	LineItems    []outgoingLineItem    `json:"line_items"`
	Fulfillments []outgoingFulfillment `json:"fulfillments"`
}

type outgoingLineItem struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Quantity        string `json:"quantity"`
	Note            string `json:"note,omitempty"`
}

type outgoingFulfillment struct {
	Type  string `json:"type"`
	State string `json:"state"`
}

type orderCreateResponse struct {
	Order struct {
		ID string `json:"id"`
	} `json:"order"`
}

// orderStatusMap translates Square order states to the normalized
// lifecycle. Anything absent falls back to pending so the order still
// surfaces instead of being dropped.
var orderStatusMap = map[string]pos.OrderStatus{
	"OPEN":      pos.OrderPending,
	"COMPLETED": pos.OrderCompleted,
	"CANCELED":  pos.OrderPending,
}

// orderTypeMap translates Square fulfillment types; absent values fall
// back to dine-in.
var orderTypeMap = map[string]pos.OrderType{
	"PICKUP":   pos.TypeTakeaway,
	"DELIVERY": pos.TypeDelivery,
}

func mapOrderStatus(state string) pos.OrderStatus {
	if status, ok := orderStatusMap[state]; ok {
		return status
	}
	return pos.OrderPending
}

func mapOrderType(fulfillmentType string) pos.OrderType {
	if orderType, ok := orderTypeMap[fulfillmentType]; ok {
		return orderType
	}
	return pos.TypeDineIn
}

func mapCatalogObjects(objects []catalogObject) []pos.MenuItem {
	items := make([]pos.MenuItem, 0, len(objects))
	for _, obj := range objects {
		if obj.Type != catalogTypeItem || obj.ItemData == nil {
			continue
		}

		var price float64
		if len(obj.ItemData.Variations) > 0 {
			if data := obj.ItemData.Variations[0].ItemVariationData; data != nil && data.PriceMoney != nil {
				price = pos.MinorToMajor(data.PriceMoney.Amount)
			}
		}

		category := obj.ItemData.CategoryID
		if category == "" {
			category = "uncategorized"
		}

		items = append(items, pos.MenuItem{
			POSID:       obj.ID,
			Name:        obj.ItemData.Name,
			Price:       price,
			Category:    category,
			Description: obj.ItemData.Description,
			// the catalog listing carries no explicit availability flag;
			// skip_modifier_screen is the closest signal it gives us
			Available: !obj.ItemData.SkipModifierScreen,
			Modifiers: []pos.Modifier{},
		})
	}
	return items
}

func mapOrders(orders []wireOrder) []pos.Order {
	result := make([]pos.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, mapOrder(o))
	}
	return result
}

func mapOrder(o wireOrder) pos.Order {
	order := pos.Order{
		POSOrderID:    o.ID,
		OrderNumber:   o.OrderNumber,
		Items:         mapLineItems(o.LineItems),
		PaymentStatus: mapPaymentStatus(o.Tenders),
		OrderStatus:   mapOrderStatus(o.State),
		OrderType:     pos.TypeDineIn,
		CreatedAt:     o.CreatedAt,
	}

	if order.OrderNumber == "" && len(o.ID) >= 6 {
		order.OrderNumber = o.ID[len(o.ID)-6:]
	} else if order.OrderNumber == "" {
		order.OrderNumber = o.ID
	}

	if o.TotalMoney != nil {
		order.TotalAmount = pos.MinorToMajor(o.TotalMoney.Amount)
	}

	if len(o.Fulfillments) > 0 {
		f := o.Fulfillments[0]
		order.OrderType = mapOrderType(f.Type)
		if f.PickupDetails != nil {
			order.TableNumber = f.PickupDetails.Note
			if r := f.PickupDetails.Recipient; r != nil {
				order.Customer = pos.CustomerInfo{
					Name:  r.DisplayName,
					Phone: r.PhoneNumber,
					Email: r.EmailAddress,
				}
			}
		}
	}

	return order
}

func mapLineItems(items []wireLineItem) []pos.OrderItem {
	result := make([]pos.OrderItem, 0, len(items))
	for _, li := range items {
		quantity, err := strconv.Atoi(li.Quantity)
		if err != nil || quantity < 1 {
			quantity = 1
		}

		item := pos.OrderItem{
			POSItemID:           li.CatalogObjectID,
			Name:                li.Name,
			Quantity:            quantity,
			Modifiers:           mapItemModifiers(li.Modifiers),
			SpecialInstructions: li.Note,
		}

		if li.BasePriceMoney != nil {
			item.UnitPrice = pos.MinorToMajor(li.BasePriceMoney.Amount)
		}
		// Square's own line total wins, even when it disagrees with
		// unit price * quantity; unit price and quantity stay as sent
		if li.TotalMoney != nil {
			item.TotalPrice = pos.MinorToMajor(li.TotalMoney.Amount)
		}

		result = append(result, item)
	}
	return result
}

func mapItemModifiers(mods []wireItemModifier) []pos.Modifier {
	result := make([]pos.Modifier, 0, len(mods))
	for _, m := range mods {
		mod := pos.Modifier{
			ID:       m.CatalogObjectID,
			Name:     m.Name,
			Required: false,
		}
		if m.TotalMoney != nil {
			mod.Price = pos.MinorToMajor(m.TotalMoney.Amount)
		}
		result = append(result, mod)
	}
	return result
}

// mapPaymentStatus infers paid from a card tender in first position.
// Cash and other tender types read as pending.
func mapPaymentStatus(tenders []wireTender) pos.PaymentStatus {
	if len(tenders) > 0 && tenders[0].CardDetails != nil {
		return pos.PaymentPaid
	}
	return pos.PaymentPending
}

func mapOutgoingLineItems(items []pos.OrderItem) []outgoingLineItem {
	result := make([]outgoingLineItem, 0, len(items))
	for _, item := range items {
		result = append(result, outgoingLineItem{
			CatalogObjectID: item.POSItemID,
			Quantity:        strconv.Itoa(item.Quantity),
			Note:            item.SpecialInstructions,
		})
	}
	return result
}

func outgoingFulfillmentType(orderType pos.OrderType) string {
	return strings.ToUpper(string(orderType))
}
