package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/a7delivery/backend/internal/domain/integration"
	"github.com/a7delivery/backend/internal/domain/orders"
)

// SyncResult reports the outcome of a store sync
type SyncResult struct {
	Fetched int
	Synced  int
}

// ListOrdersInput contains the input for listing orders
type ListOrdersInput struct {
	Status string
}

// OrderView is the client-facing projection of an order
type OrderView struct {
	ID              uuid.UUID
	ShopOrderID     string
	OrderNumber     string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	ShippingAddress string
	City            string
	LineItems       []orders.LineItem
	TotalPrice      decimal.Decimal
	FinancialStatus string
	Status          orders.Status
	TrackingNumber  string
	Notes           string
	SentAt          *time.Time
	CreatedAt       time.Time
}

// UpdateOrderInput contains the input for a partial order edit.
// Nil fields keep the stored value.
type UpdateOrderInput struct {
	OrderID         string
	CustomerName    *string
	CustomerPhone   *string
	ShippingAddress *string
	City            *string
	Notes           *string
	Status          *string
}

// DispatchInput contains the selected order IDs for a carrier dispatch
type DispatchInput struct {
	OrderIDs []string
}

// DispatchView is the tagged result of a batch dispatch
type DispatchView struct {
	Status       integration.DispatchStatus
	SuccessCount int
	FailedCount  int
	Failures     []integration.DispatchFailure
	DispatchedAt time.Time
}

// orderView maps a domain order onto the client-facing projection
func orderView(o *orders.Order) OrderView {
	return OrderView{
		ID:              o.ID,
		ShopOrderID:     o.ShopOrderID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		City:            o.City,
		LineItems:       o.LineItems,
		TotalPrice:      o.TotalPrice,
		FinancialStatus: o.FinancialStatus,
		Status:          o.Status,
		TrackingNumber:  o.TrackingNumber,
		Notes:           o.Notes,
		SentAt:          o.SentAt,
		CreatedAt:       o.CreatedAt,
	}
}
