package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/a7delivery/backend/internal/domain/orders"
	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/a7delivery/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements orders.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM-backed order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists a new order
func (r *GormOrderRepository) Create(ctx context.Context, order *orders.Order) error {
	model := models.OrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update persists changes to an existing order
func (r *GormOrderRepository) Update(ctx context.Context, order *orders.Order) error {
	model := models.OrderModelFromDomain(order)
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", model.ID).
		Select("status", "tracking_number", "notes", "sent_at", "customer_name",
			"customer_phone", "shipping_address", "city", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds all orders matching the given IDs
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*orders.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	found := make([]*orders.Order, 0, len(rows))
	for i := range rows {
		found = append(found, rows[i].ToDomain())
	}
	return found, nil
}

// FindByShopOrderID finds an order by its store platform identifier
func (r *GormOrderRepository) FindByShopOrderID(ctx context.Context, shopOrderID string) (*orders.Order, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).Where("shop_order_id = ?", shopOrderID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by shop order id: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns orders matching the filter, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter orders.Filter) ([]*orders.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var rows []models.OrderModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	found := make([]*orders.Order, 0, len(rows))
	for i := range rows {
		found = append(found, rows[i].ToDomain())
	}
	return found, nil
}

// ExistsByShopOrderID reports whether an order with the given store identifier exists
func (r *GormOrderRepository) ExistsByShopOrderID(ctx context.Context, shopOrderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("shop_order_id = ?", shopOrderID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check shop order id: %w", err)
	}
	return count > 0, nil
}

// CountByStatus returns order counts grouped by status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (*orders.StatusCounts, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	counts := &orders.StatusCounts{}
	for _, r := range rows {
		counts.Total += r.Count
		switch orders.Status(r.Status) {
		case orders.StatusPending:
			counts.Pending = r.Count
		case orders.StatusProcessing:
			counts.Processing = r.Count
		case orders.StatusSent:
			counts.Sent = r.Count
		case orders.StatusDelivered:
			counts.Delivered = r.Count
		}
	}
	return counts, nil
}
