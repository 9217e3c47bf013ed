package dashboard

import (
	"context"
)

// OrderBoard holds the order list snapshot and the dispatch selection.
// It is meant for single-goroutine use by a UI loop.
type OrderBoard struct {
	client    *Client
	orders    []Order
	selection map[string]struct{}
	filter    string
}

// NewOrderBoard creates an empty order board
func NewOrderBoard(client *Client) *OrderBoard {
	return &OrderBoard{
		client:    client,
		selection: make(map[string]struct{}),
	}
}

// SetFilter sets the status filter applied on the next Refresh
func (b *OrderBoard) SetFilter(status string) {
	b.filter = status
}

// Refresh replaces the snapshot with the backend's current list. The
// selection is intersected with the new ids so stale selections cannot
// dispatch orders that no longer exist.
func (b *OrderBoard) Refresh(ctx context.Context) error {
	orders, err := b.client.Orders(ctx, b.filter)
	if err != nil {
		return err
	}
	b.orders = orders

	known := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		known[o.ID] = struct{}{}
	}
	for id := range b.selection {
		if _, ok := known[id]; !ok {
			delete(b.selection, id)
		}
	}
	return nil
}

// Orders returns the current snapshot
func (b *OrderBoard) Orders() []Order {
	return b.orders
}

// Sync pulls new orders from the store and refreshes the snapshot
func (b *OrderBoard) Sync(ctx context.Context) (*SyncResult, error) {
	result, err := b.client.SyncOrders(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.Refresh(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// IsSelected reports whether an order is selected
func (b *OrderBoard) IsSelected(id string) bool {
	_, ok := b.selection[id]
	return ok
}

// Selected returns the selected ids in snapshot order
func (b *OrderBoard) Selected() []string {
	out := make([]string, 0, len(b.selection))
	for _, o := range b.orders {
		if b.IsSelected(o.ID) {
			out = append(out, o.ID)
		}
	}
	return out
}

// Toggle flips the selection state of one order. Ids not present in the
// snapshot are ignored.
func (b *OrderBoard) Toggle(id string) {
	known := false
	for _, o := range b.orders {
		if o.ID == id {
			known = true
			break
		}
	}
	if !known {
		return
	}

	if b.IsSelected(id) {
		delete(b.selection, id)
	} else {
		b.selection[id] = struct{}{}
	}
}

// ToggleAll selects every order unless everything is already selected,
// in which case it clears the selection
func (b *OrderBoard) ToggleAll() {
	if len(b.selection) == len(b.orders) {
		b.ClearSelection()
		return
	}
	for _, o := range b.orders {
		b.selection[o.ID] = struct{}{}
	}
}

// ClearSelection drops the selection
func (b *OrderBoard) ClearSelection() {
	b.selection = make(map[string]struct{})
}

// Dispatch sends the selected orders to the carrier. An empty selection
// returns ErrEmptySelection without touching the network. Successfully
// dispatched ids leave the selection; the failed subset stays selected
// for retry. The snapshot is refreshed once afterwards.
func (b *OrderBoard) Dispatch(ctx context.Context) (*DispatchResult, error) {
	ids := b.Selected()
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	result, err := b.client.SendSelected(ctx, ids)
	if err != nil {
		return nil, err
	}

	failed := make(map[string]struct{}, len(result.Failures))
	for _, f := range result.Failures {
		failed[f.OrderID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := failed[id]; !ok {
			delete(b.selection, id)
		}
	}

	if err := b.Refresh(ctx); err != nil {
		return result, err
	}
	return result, nil
}
