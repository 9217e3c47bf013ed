package orders

import (
	"strings"
	"time"

	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSent       Status = "sent"
	StatusDelivered  Status = "delivered"
)

// IsValid returns true if the status is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusSent, StatusDelivered:
		return true
	default:
		return false
	}
}

// LineItem is a single purchased product on an order
type LineItem struct {
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order represents a store order held for carrier dispatch.
// It is the aggregate root for order operations.
type Order struct {
	shared.BaseEntity
	ShopOrderID     string
	OrderNumber     string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	ShippingAddress string
	City            string
	LineItems       []LineItem
	TotalPrice      decimal.Decimal
	FinancialStatus string
	Status          Status
	TrackingNumber  string
	Notes           string
	SentAt          *time.Time
}

// NewOrder creates a pending order from store data
func NewOrder(shopOrderID, orderNumber string) (*Order, error) {
	if strings.TrimSpace(shopOrderID) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Store order ID cannot be empty")
	}

	return &Order{
		BaseEntity:  shared.NewBaseEntity(),
		ShopOrderID: shopOrderID,
		OrderNumber: orderNumber,
		Status:      StatusPending,
		LineItems:   make([]LineItem, 0),
	}, nil
}

// SetStatus transitions the order to a new status
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	o.Status = status
	o.Touch()
	return nil
}

// MarkSent records a successful carrier handoff
func (o *Order) MarkSent(trackingNumber string) {
	now := time.Now()
	o.Status = StatusSent
	o.SentAt = &now
	if trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
	o.Touch()
}

// ProductSummary joins the line item titles for carrier manifests
func (o *Order) ProductSummary() string {
	titles := make([]string, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		titles = append(titles, item.Title)
	}
	return strings.Join(titles, ", ")
}
