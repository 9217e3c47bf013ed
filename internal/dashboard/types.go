package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account as returned by the backend
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsAdmin returns true for administrator accounts
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// LineItem is a purchased product on an order
type LineItem struct {
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is a store order as returned by the backend
type Order struct {
	ID              string          `json:"id"`
	ShopifyOrderID  string          `json:"shopify_order_id"`
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerEmail   string          `json:"customer_email"`
	ShippingAddress string          `json:"shipping_address"`
	City            string          `json:"city"`
	LineItems       []LineItem      `json:"line_items"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	FinancialStatus string          `json:"financial_status"`
	Status          string          `json:"status"`
	TrackingNumber  string          `json:"tracking_number"`
	Notes           string          `json:"notes"`
	SentAt          *time.Time      `json:"sent_at"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SyncResult reports an order sync outcome
type SyncResult struct {
	Fetched int `json:"fetched"`
	Synced  int `json:"synced"`
}

// OrderStats holds order counts grouped by status
type OrderStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
	Delivered  int64 `json:"delivered"`
}

// OrderEdit is a partial order update. Nil fields keep the stored values.
type OrderEdit struct {
	CustomerName    *string `json:"customer_name,omitempty"`
	CustomerPhone   *string `json:"customer_phone,omitempty"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
	City            *string `json:"city,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          *string `json:"status,omitempty"`
}

// DispatchFailure describes one parcel the carrier rejected
type DispatchFailure struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

// DispatchResult is the itemized outcome of a batch dispatch
type DispatchResult struct {
	Status       string            `json:"status"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Failures     []DispatchFailure `json:"failures"`
	DispatchedAt time.Time         `json:"dispatched_at"`
}

// Settings is the masked integration settings view
type Settings struct {
	ShopifyStoreURL       string    `json:"shopify_store_url"`
	ShopifyAccessTokenSet bool      `json:"shopify_access_token_set"`
	ZRExpressTokenSet     bool      `json:"zrexpress_token_set"`
	ZRExpressKeySet       bool      `json:"zrexpress_key_set"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// SettingsInput is the save payload. Empty secret fields preserve the
// stored values on the backend.
type SettingsInput struct {
	ShopifyStoreURL    string `json:"shopify_store_url"`
	ShopifyAccessToken string `json:"shopify_access_token"`
	ZRExpressToken     string `json:"zrexpress_token"`
	ZRExpressKey       string `json:"zrexpress_key"`
}

// ConnectionStatus reports a single integration probe
type ConnectionStatus struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// ConnectionsResult reports both integration probes
type ConnectionsResult struct {
	Shopify   ConnectionStatus `json:"shopify"`
	ZRExpress ConnectionStatus `json:"zrexpress"`
}

// LoginResult is a successful authentication
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// CreateUserInput is the payload for creating an account
type CreateUserInput struct {
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UpdateUserInput is a partial account update. Nil fields keep the
// stored values.
type UpdateUserInput struct {
	Password    string     `json:"password,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ClearExpiry bool       `json:"clear_expiry,omitempty"`
}

// ToggleResult reports the account state after a toggle
type ToggleResult struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}
