package orders

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows order listings
type Filter struct {
	Status *Status
}

// StatusCounts holds per-status order totals
type StatusCounts struct {
	Total      int64
	Pending    int64
	Processing int64
	Sent       int64
	Delivered  int64
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Order, error)
	FindByShopOrderID(ctx context.Context, shopOrderID string) (*Order, error)
	// FindAll returns orders newest first, optionally filtered by status
	FindAll(ctx context.Context, filter Filter) ([]*Order, error)
	ExistsByShopOrderID(ctx context.Context, shopOrderID string) (bool, error)
	CountByStatus(ctx context.Context) (*StatusCounts, error)
}
