package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/a7delivery/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the Shopify API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// apiVersion pins the Shopify Admin API version used by the adapter
const apiVersion = "2024-01"

// Adapter implements the ShopPlatform interface for Shopify stores
type Adapter struct {
	httpClient *http.Client
}

// Option configures the adapter
type Option func(*Adapter)

// WithHTTPClient overrides the HTTP client, used in tests
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		a.httpClient = client
	}
}

// NewAdapter creates a new Shopify adapter
func NewAdapter(timeout time.Duration, opts ...Option) *Adapter {
	a := &Adapter{
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NormalizeStoreURL canonicalizes a store URL or bare shop handle to
// https://<shop>.myshopify.com
func NormalizeStoreURL(raw string) string {
	storeURL := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(storeURL, "https://") && !strings.HasPrefix(storeURL, "http://") {
		storeURL = "https://" + storeURL
	}
	if !strings.HasSuffix(storeURL, ".myshopify.com") {
		storeURL += ".myshopify.com"
	}
	return storeURL
}

// PullOrders fetches the current orders from the store
func (a *Adapter) PullOrders(ctx context.Context, creds integration.ShopCredentials) ([]integration.PlatformOrder, error) {
	if !creds.Configured() {
		return nil, integration.ErrPlatformNotConfigured
	}

	url := fmt.Sprintf("%s/admin/api/%s/orders.json", NormalizeStoreURL(creds.StoreURL), apiVersion)
	body, err := a.doGet(ctx, url, creds.AccessToken)
	if err != nil {
		return nil, err
	}

	var resp ordersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse orders response: %v", integration.ErrPlatformInvalidResponse, err)
	}

	orders := make([]integration.PlatformOrder, 0, len(resp.Orders))
	for i := range resp.Orders {
		orders = append(orders, convertOrder(&resp.Orders[i]))
	}
	return orders, nil
}

// TestConnection probes the store via the shop endpoint
func (a *Adapter) TestConnection(ctx context.Context, creds integration.ShopCredentials) integration.ConnectionStatus {
	if !creds.Configured() {
		return integration.ConnectionStatus{OK: false, Detail: "store URL and access token are not configured"}
	}

	url := fmt.Sprintf("%s/admin/api/%s/shop.json", NormalizeStoreURL(creds.StoreURL), apiVersion)
	body, err := a.doGet(ctx, url, creds.AccessToken)
	if err != nil {
		return integration.ConnectionStatus{OK: false, Detail: err.Error()}
	}

	var resp shopResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return integration.ConnectionStatus{OK: false, Detail: "invalid shop response"}
	}

	detail := resp.Shop.Name
	if resp.Shop.Domain != "" {
		detail = fmt.Sprintf("%s (%s)", resp.Shop.Name, resp.Shop.Domain)
	}
	return integration.ConnectionStatus{OK: true, Detail: detail}
}

// doGet performs an authenticated GET against the Shopify Admin API
func (a *Adapter) doGet(ctx context.Context, url, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformAuthFailed, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// convertOrder maps a Shopify order payload onto the platform order value
func convertOrder(o *shopifyOrder) integration.PlatformOrder {
	order := integration.PlatformOrder{
		PlatformOrderID: fmt.Sprintf("%d", o.ID),
		OrderNumber:     fmt.Sprintf("#%d", o.OrderNumber),
		CustomerName:    strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName),
		CustomerPhone:   o.Customer.Phone,
		CustomerEmail:   o.Customer.Email,
		TotalPrice:      parseDecimal(o.TotalPrice),
		FinancialStatus: o.FinancialStatus,
	}

	if o.ShippingAddress != nil {
		order.ShippingAddress = strings.TrimSpace(o.ShippingAddress.Address1 + " " + o.ShippingAddress.Address2)
		order.City = o.ShippingAddress.City
		if order.CustomerPhone == "" {
			order.CustomerPhone = o.ShippingAddress.Phone
		}
	}

	if o.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, o.CreatedAt); err == nil {
			order.CreatedAt = t
		}
	}

	for _, item := range o.LineItems {
		order.Items = append(order.Items, integration.PlatformLineItem{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    parseDecimal(item.Price),
		})
	}

	return order
}

// parseDecimal parses a Shopify money string, returning zero on malformed input
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Ensure Adapter implements the ShopPlatform interface
var _ integration.ShopPlatform = (*Adapter)(nil)
