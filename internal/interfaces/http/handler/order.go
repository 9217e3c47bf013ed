package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	orderapp "github.com/a7delivery/backend/internal/application/orders"
	"github.com/a7delivery/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order sync, listing, editing and carrier dispatch
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *orderapp.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// List returns stored orders, newest first, optionally filtered by status
// GET /api/v1/orders?status=pending
func (h *OrderHandler) List(c *gin.Context) {
	views, err := h.orderService.List(c.Request.Context(), orderapp.ListOrdersInput{
		Status: c.Query("status"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, OrderResponseFromView(v))
	}
	h.Success(c, resp)
}

// Sync pulls orders from the store and inserts the ones not seen before
// GET /api/v1/orders/sync
func (h *OrderHandler) Sync(c *gin.Context) {
	result, err := h.orderService.Sync(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SyncResponse{
		Fetched: result.Fetched,
		Synced:  result.Synced,
	})
}

// Stats returns order counts grouped by status
// GET /api/v1/orders/stats
func (h *OrderHandler) Stats(c *gin.Context) {
	counts, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, OrderStatsResponse{
		Total:      counts.Total,
		Pending:    counts.Pending,
		Processing: counts.Processing,
		Sent:       counts.Sent,
		Delivered:  counts.Delivered,
	})
}

// Update applies a partial edit to an order
// PATCH /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	view, err := h.orderService.Update(c.Request.Context(), orderapp.UpdateOrderInput{
		OrderID:         c.Param("id"),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		Notes:           req.Notes,
		Status:          req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, OrderResponseFromView(*view))
}

// SendSelected dispatches the selected orders to the carrier in one batch
// POST /api/v1/orders/send-selected
func (h *OrderHandler) SendSelected(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	view, err := h.orderService.DispatchSelected(c.Request.Context(), orderapp.DispatchInput{
		OrderIDs: req.OrderIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DispatchResponseFromView(view))
}
