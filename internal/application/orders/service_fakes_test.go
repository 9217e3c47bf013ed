package orders

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/a7delivery/backend/internal/domain/integration"
	"github.com/a7delivery/backend/internal/domain/orders"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/domain/shared"
)

// fakeOrderRepo is an in-memory OrderRepository for service tests
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*orders.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*orders.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ShopOrderID == order.ShopOrderID {
			return shared.ErrAlreadyExists
		}
	}
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return shared.ErrNotFound
	}
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*orders.Order
	for _, id := range ids {
		if o, ok := r.orders[id]; ok {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByShopOrderID(_ context.Context, shopOrderID string) (*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ShopOrderID == shopOrderID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindAll(_ context.Context, filter orders.Filter) ([]*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*orders.Order
	for _, o := range r.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeOrderRepo) ExistsByShopOrderID(_ context.Context, shopOrderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ShopOrderID == shopOrderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context) (*orders.StatusCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := &orders.StatusCounts{}
	for _, o := range r.orders {
		counts.Total++
		switch o.Status {
		case orders.StatusPending:
			counts.Pending++
		case orders.StatusProcessing:
			counts.Processing++
		case orders.StatusSent:
			counts.Sent++
		case orders.StatusDelivered:
			counts.Delivered++
		}
	}
	return counts, nil
}

var _ orders.OrderRepository = (*fakeOrderRepo)(nil)

// fakeSettingsRepo is an in-memory settings.Repository
type fakeSettingsRepo struct {
	mu     sync.Mutex
	stored settings.IntegrationSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*settings.IntegrationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := r.stored
	return &clone, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *settings.IntegrationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = *s
	return nil
}

var _ settings.Repository = (*fakeSettingsRepo)(nil)

func configuredSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{stored: settings.IntegrationSettings{
		ShopStoreURL:    "demo",
		ShopAccessToken: "shpat_test",
		CarrierToken:    "zr-token",
		CarrierKey:      "zr-key",
	}}
}

// fakePlatform is a scripted ShopPlatform
type fakePlatform struct {
	orders []integration.PlatformOrder
	err    error
	status integration.ConnectionStatus
	calls  int
}

func (p *fakePlatform) PullOrders(_ context.Context, _ integration.ShopCredentials) ([]integration.PlatformOrder, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.orders, nil
}

func (p *fakePlatform) TestConnection(_ context.Context, _ integration.ShopCredentials) integration.ConnectionStatus {
	return p.status
}

var _ integration.ShopPlatform = (*fakePlatform)(nil)

// fakeCarrier is a scripted Carrier that records dispatched parcels
type fakeCarrier struct {
	result  *integration.DispatchResult
	err     error
	status  integration.ConnectionStatus
	calls   int
	parcels []integration.Parcel
}

func (c *fakeCarrier) Dispatch(_ context.Context, _ integration.CarrierCredentials, parcels []integration.Parcel) (*integration.DispatchResult, error) {
	c.calls++
	c.parcels = parcels
	if c.err != nil {
		return nil, c.err
	}
	if c.result != nil {
		return c.result, nil
	}

	// Default: accept everything
	result := &integration.DispatchResult{DispatchedAt: time.Now()}
	for _, p := range parcels {
		result.SuccessCount++
		result.AcceptedRefs = append(result.AcceptedRefs, p.OrderRef)
	}
	result.Finalize()
	return result, nil
}

func (c *fakeCarrier) TestConnection(_ context.Context, _ integration.CarrierCredentials) integration.ConnectionStatus {
	return c.status
}

var _ integration.Carrier = (*fakeCarrier)(nil)
