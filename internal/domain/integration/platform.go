package integration

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Platform errors shared by all adapters
var (
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
	ErrPlatformAuthFailed      = errors.New("integration: platform authentication failed")
)

// PlatformOrder represents an order pulled from the e-commerce store
type PlatformOrder struct {
	// PlatformOrderID is the order ID on the store
	PlatformOrderID string
	// OrderNumber is the human-facing order number
	OrderNumber string
	// CustomerName is the buyer's full name
	CustomerName string
	// CustomerPhone is the buyer's phone number
	CustomerPhone string
	// CustomerEmail is the buyer's email
	CustomerEmail string
	// ShippingAddress is the delivery street address
	ShippingAddress string
	// City is the delivery city
	City string
	// TotalPrice is what the buyer paid
	TotalPrice decimal.Decimal
	// FinancialStatus is the store payment status (paid, pending, refunded...)
	FinancialStatus string
	// Items contains the order line items
	Items []PlatformLineItem
	// CreatedAt is when the order was placed on the store
	CreatedAt time.Time
}

// PlatformLineItem is a line item on a platform order
type PlatformLineItem struct {
	Title    string
	Quantity int
	Price    decimal.Decimal
}

// ShopCredentials holds the store API access configuration
type ShopCredentials struct {
	StoreURL    string
	AccessToken string
}

// Configured returns true when both fields are set
func (c ShopCredentials) Configured() bool {
	return c.StoreURL != "" && c.AccessToken != ""
}

// ConnectionStatus is the outcome of a connectivity probe
type ConnectionStatus struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// ShopPlatform is the port for the upstream e-commerce store.
// The concrete adapter lives in the infrastructure layer.
type ShopPlatform interface {
	// PullOrders fetches recent orders from the store
	PullOrders(ctx context.Context, creds ShopCredentials) ([]PlatformOrder, error)

	// TestConnection probes the store API with the given credentials
	TestConnection(ctx context.Context, creds ShopCredentials) ConnectionStatus
}
