package pos

// Provider identifies one external POS vendor integration.
type Provider string

const (
	ProviderSquare     Provider = "square"
	ProviderToast      Provider = "toast"
	ProviderClover     Provider = "clover"
	ProviderLightspeed Provider = "lightspeed"
)

// Environment selects between the vendor's sandbox and production APIs.
type Environment string

const (
	EnvSandbox    Environment = "sandbox"
	EnvProduction Environment = "production"
)

// ProviderConfig holds everything needed to talk to one vendor account.
// It is immutable for the lifetime of one adapter; changing any field
// means constructing a new adapter.
type ProviderConfig struct {
	Provider    Provider    `bson:"provider" json:"provider"`
	APIKey      string      `bson:"api_key" json:"api_key"`
	MerchantID  string      `bson:"merchant_id,omitempty" json:"merchant_id,omitempty"`
	LocationID  string      `bson:"location_id,omitempty" json:"location_id,omitempty"`
	Environment Environment `bson:"environment" json:"environment"`
	WebhookURL  string      `bson:"webhook_url,omitempty" json:"webhook_url,omitempty"`
}

// Modifier is an add-on or variation attached to a menu item or order line.
type Modifier struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Required bool    `bson:"required" json:"required"`
}

// MenuItem is the normalized view of one sellable item as the vendor knows
// it. Price is always in major currency units (dollars, not cents); minor
// unit conversion happens inside the vendor connectors.
type MenuItem struct {
	POSID       string     `bson:"pos_id" json:"pos_id"`
	Name        string     `bson:"name" json:"name"`
	Price       float64    `bson:"price" json:"price"`
	Category    string     `bson:"category" json:"category"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Available   bool       `bson:"available" json:"available"`
	Modifiers   []Modifier `bson:"modifiers,omitempty" json:"modifiers,omitempty"`
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
)

// OrderType is how an order is served.
type OrderType string

const (
	TypeDineIn   OrderType = "dine-in"
	TypeTakeaway OrderType = "takeaway"
	TypeDelivery OrderType = "delivery"
)

// CustomerInfo carries whatever contact details the vendor supplied.
// Any field may be empty.
type CustomerInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// OrderItem is one line of a vendor order. TotalPrice is the vendor's own
// figure and is kept even when it disagrees with UnitPrice*Quantity.
type OrderItem struct {
	POSItemID           string     `bson:"pos_item_id" json:"pos_item_id"`
	Name                string     `bson:"name" json:"name"`
	Quantity            int        `bson:"quantity" json:"quantity"`
	UnitPrice           float64    `bson:"unit_price" json:"unit_price"`
	TotalPrice          float64    `bson:"total_price" json:"total_price"`
	Modifiers           []Modifier `bson:"modifiers,omitempty" json:"modifiers,omitempty"`
	SpecialInstructions string     `bson:"special_instructions,omitempty" json:"special_instructions,omitempty"`
}

// Order is the normalized snapshot of one order as the vendor knows it.
// Both MenuItem and Order are transient DTOs, built fresh on every
// adapter call and never cached or mutated across calls.
type Order struct {
	POSOrderID    string        `bson:"pos_order_id" json:"pos_order_id"`
	OrderNumber   string        `bson:"order_number" json:"order_number"`
	Customer      CustomerInfo  `bson:"customer" json:"customer"`
	Items         []OrderItem   `bson:"items" json:"items"`
	TotalAmount   float64       `bson:"total_amount" json:"total_amount"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"payment_status"`
	OrderStatus   OrderStatus   `bson:"order_status" json:"order_status"`
	OrderType     OrderType     `bson:"order_type" json:"order_type"`
	CreatedAt     string        `bson:"created_at" json:"created_at"`
	TableNumber   string        `bson:"table_number,omitempty" json:"table_number,omitempty"`
}
