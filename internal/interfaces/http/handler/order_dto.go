package handler

import (
	"time"

	"github.com/shopspring/decimal"

	orderapp "github.com/a7delivery/backend/internal/application/orders"
	"github.com/a7delivery/backend/internal/domain/orders"
)

// OrderResponse is the client-facing order representation
type OrderResponse struct {
	ID              string            `json:"id"`
	ShopifyOrderID  string            `json:"shopify_order_id"`
	OrderNumber     string            `json:"order_number"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerEmail   string            `json:"customer_email"`
	ShippingAddress string            `json:"shipping_address"`
	City            string            `json:"city"`
	LineItems       []orders.LineItem `json:"line_items"`
	TotalPrice      decimal.Decimal   `json:"total_price"`
	FinancialStatus string            `json:"financial_status"`
	Status          string            `json:"status"`
	TrackingNumber  string            `json:"tracking_number"`
	Notes           string            `json:"notes"`
	SentAt          *time.Time        `json:"sent_at"`
	CreatedAt       time.Time         `json:"created_at"`
}

// OrderResponseFromView maps an application order view onto the response shape
func OrderResponseFromView(v orderapp.OrderView) OrderResponse {
	return OrderResponse{
		ID:              v.ID.String(),
		ShopifyOrderID:  v.ShopOrderID,
		OrderNumber:     v.OrderNumber,
		CustomerName:    v.CustomerName,
		CustomerPhone:   v.CustomerPhone,
		CustomerEmail:   v.CustomerEmail,
		ShippingAddress: v.ShippingAddress,
		City:            v.City,
		LineItems:       v.LineItems,
		TotalPrice:      v.TotalPrice,
		FinancialStatus: v.FinancialStatus,
		Status:          string(v.Status),
		TrackingNumber:  v.TrackingNumber,
		Notes:           v.Notes,
		SentAt:          v.SentAt,
		CreatedAt:       v.CreatedAt,
	}
}

// SyncResponse reports the outcome of POST /orders/sync
type SyncResponse struct {
	Fetched int `json:"fetched"`
	Synced  int `json:"synced"`
}

// OrderStatsResponse reports order counts grouped by status
type OrderStatsResponse struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
	Delivered  int64 `json:"delivered"`
}

// UpdateOrderRequest is the body of PATCH /orders/:id. Nil fields keep
// the stored values.
type UpdateOrderRequest struct {
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	ShippingAddress *string `json:"shipping_address"`
	City            *string `json:"city"`
	Notes           *string `json:"notes"`
	Status          *string `json:"status" binding:"omitempty,oneof=pending processing sent delivered"`
}

// DispatchRequest is the body of POST /orders/send-selected
type DispatchRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required"`
}

// DispatchFailureResponse describes one rejected parcel
type DispatchFailureResponse struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

// DispatchResponse is the tagged result of POST /orders/send-selected
type DispatchResponse struct {
	Status       string                    `json:"status"`
	SuccessCount int                       `json:"success_count"`
	FailedCount  int                       `json:"failed_count"`
	Failures     []DispatchFailureResponse `json:"failures"`
	DispatchedAt time.Time                 `json:"dispatched_at"`
}

// DispatchResponseFromView maps a dispatch view onto the response shape
func DispatchResponseFromView(v *orderapp.DispatchView) DispatchResponse {
	resp := DispatchResponse{
		Status:       string(v.Status),
		SuccessCount: v.SuccessCount,
		FailedCount:  v.FailedCount,
		Failures:     make([]DispatchFailureResponse, 0, len(v.Failures)),
		DispatchedAt: v.DispatchedAt,
	}
	for _, f := range v.Failures {
		resp.Failures = append(resp.Failures, DispatchFailureResponse{
			OrderID: f.OrderRef,
			Message: f.Message,
		})
	}
	return resp
}
