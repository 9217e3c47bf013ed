package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/a7delivery/backend/internal/domain/integration"
	"github.com/a7delivery/backend/internal/domain/orders"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/domain/shared"
)

// defaultWilayaID is used when an order carries no wilaya mapping.
// 16 is Algiers.
const defaultWilayaID = "16"

// OrderService handles order sync, listing and carrier dispatch
type OrderService struct {
	orderRepo    orders.OrderRepository
	settingsRepo settings.Repository
	platform     integration.ShopPlatform
	carrier      integration.Carrier
	logger       *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo orders.OrderRepository,
	settingsRepo settings.Repository,
	platform integration.ShopPlatform,
	carrier integration.Carrier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		platform:     platform,
		carrier:      carrier,
		logger:       logger,
	}
}

// Sync pulls orders from the store and inserts the ones not seen before
// as pending
func (s *OrderService) Sync(ctx context.Context) (*SyncResult, error) {
	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load integration settings")
	}

	creds := stored.ShopCredentials()
	if !creds.Configured() {
		return nil, shared.NewDomainError("SETTINGS_NOT_CONFIGURED", "Store API settings are not configured")
	}

	pulled, err := s.platform.PullOrders(ctx, creds)
	if err != nil {
		s.logger.Error("Store pull failed", zap.Error(err))
		if errors.Is(err, integration.ErrPlatformAuthFailed) {
			return nil, shared.NewDomainError("UPSTREAM_AUTH_FAILED", "Store rejected the configured credentials")
		}
		return nil, shared.NewDomainError("UPSTREAM_FAILED", "Failed to fetch orders from the store")
	}

	result := &SyncResult{Fetched: len(pulled)}
	for i := range pulled {
		created, err := s.upsertPlatformOrder(ctx, &pulled[i])
		if err != nil {
			s.logger.Warn("Skipping order during sync",
				zap.String("platform_order_id", pulled[i].PlatformOrderID),
				zap.Error(err))
			continue
		}
		if created {
			result.Synced++
		}
	}

	s.logger.Info("Order sync finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("synced", result.Synced))
	return result, nil
}

// upsertPlatformOrder inserts a pulled order unless it is already known
func (s *OrderService) upsertPlatformOrder(ctx context.Context, po *integration.PlatformOrder) (bool, error) {
	exists, err := s.orderRepo.ExistsByShopOrderID(ctx, po.PlatformOrderID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	order, err := orders.NewOrder(po.PlatformOrderID, po.OrderNumber)
	if err != nil {
		return false, err
	}
	order.CustomerName = po.CustomerName
	order.CustomerPhone = po.CustomerPhone
	order.CustomerEmail = po.CustomerEmail
	order.ShippingAddress = po.ShippingAddress
	order.City = po.City
	order.TotalPrice = po.TotalPrice
	order.FinancialStatus = po.FinancialStatus
	for _, item := range po.Items {
		order.LineItems = append(order.LineItems, orders.LineItem{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns orders newest first, optionally filtered by status
func (s *OrderService) List(ctx context.Context, input ListOrdersInput) ([]OrderView, error) {
	filter := orders.Filter{}
	if input.Status != "" {
		status := orders.Status(input.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown order status %q", input.Status))
		}
		filter.Status = &status
	}

	found, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	views := make([]OrderView, 0, len(found))
	for _, o := range found {
		views = append(views, orderView(o))
	}
	return views, nil
}

// Stats returns order counts grouped by status
func (s *OrderService) Stats(ctx context.Context) (*orders.StatusCounts, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Failed to count orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute order stats")
	}
	return counts, nil
}

// Update applies a partial edit to an order
func (s *OrderService) Update(ctx context.Context, input UpdateOrderInput) (*OrderView, error) {
	id, err := uuid.Parse(input.OrderID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid order ID")
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
		}
		s.logger.Error("Failed to load order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load order")
	}

	if input.CustomerName != nil {
		order.CustomerName = *input.CustomerName
	}
	if input.CustomerPhone != nil {
		order.CustomerPhone = *input.CustomerPhone
	}
	if input.ShippingAddress != nil {
		order.ShippingAddress = *input.ShippingAddress
	}
	if input.City != nil {
		order.City = *input.City
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if input.Status != nil {
		if err := order.SetStatus(orders.Status(*input.Status)); err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
	}
	order.Touch()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order")
	}

	view := orderView(order)
	return &view, nil
}

// DispatchSelected sends the selected orders to the carrier in one batch
// and marks the accepted ones as sent
func (s *OrderService) DispatchSelected(ctx context.Context, input DispatchInput) (*DispatchView, error) {
	if len(input.OrderIDs) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "No orders selected")
	}

	ids := make([]uuid.UUID, 0, len(input.OrderIDs))
	for _, raw := range input.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Invalid order ID %q", raw))
		}
		ids = append(ids, id)
	}

	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load integration settings")
	}
	creds := stored.CarrierCredentials()
	if !creds.Configured() {
		return nil, shared.NewDomainError("SETTINGS_NOT_CONFIGURED", "Carrier API settings are not configured")
	}

	selected, err := s.orderRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load selected orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load selected orders")
	}
	if len(selected) == 0 {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "None of the selected orders exist")
	}

	byRef := make(map[string]*orders.Order, len(selected))
	trackingByRef := make(map[string]string, len(selected))
	parcels := make([]integration.Parcel, 0, len(selected))
	for _, order := range selected {
		parcel := parcelFromOrder(order)
		byRef[order.ID.String()] = order
		trackingByRef[order.ID.String()] = parcel.Tracking
		parcels = append(parcels, parcel)
	}

	result, err := s.carrier.Dispatch(ctx, creds, parcels)
	if err != nil {
		s.logger.Error("Carrier dispatch failed", zap.Error(err))
		if errors.Is(err, integration.ErrPlatformAuthFailed) {
			return nil, shared.NewDomainError("UPSTREAM_AUTH_FAILED", "Carrier rejected the configured credentials")
		}
		return nil, shared.NewDomainError("UPSTREAM_FAILED", "Failed to send orders to the carrier")
	}

	for _, ref := range result.AcceptedRefs {
		order, ok := byRef[ref]
		if !ok {
			continue
		}
		order.MarkSent(trackingByRef[ref])
		if err := s.orderRepo.Update(ctx, order); err != nil {
			s.logger.Error("Failed to mark order as sent",
				zap.String("order_id", ref),
				zap.Error(err))
		}
	}

	s.logger.Info("Dispatch finished",
		zap.String("status", string(result.Status)),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailedCount))

	return &DispatchView{
		Status:       result.Status,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		Failures:     result.Failures,
		DispatchedAt: result.DispatchedAt,
	}, nil
}

// parcelFromOrder builds a carrier parcel for an order
func parcelFromOrder(o *orders.Order) integration.Parcel {
	tracking := o.TrackingNumber
	if tracking == "" {
		tracking = "A7DEL-" + o.ID.String()
	}
	return integration.Parcel{
		Tracking:   tracking,
		OrderRef:   o.ID.String(),
		ExternalID: o.ShopOrderID,
		Client:     o.CustomerName,
		Phone:      o.CustomerPhone,
		Address:    o.ShippingAddress,
		WilayaID:   defaultWilayaID,
		Commune:    o.City,
		Total:      o.TotalPrice,
		Products:   o.ProductSummary(),
		Note:       o.Notes,
	}
}
