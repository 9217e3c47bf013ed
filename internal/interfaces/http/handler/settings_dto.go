package handler

import (
	"time"

	settingsapp "github.com/a7delivery/backend/internal/application/settings"
)

// SettingsResponse is the masked settings representation. Secrets never
// appear; the *_set flags tell the client whether a credential exists.
type SettingsResponse struct {
	ShopifyStoreURL       string    `json:"shopify_store_url"`
	ShopifyAccessTokenSet bool      `json:"shopify_access_token_set"`
	ZRExpressTokenSet     bool      `json:"zrexpress_token_set"`
	ZRExpressKeySet       bool      `json:"zrexpress_key_set"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// SettingsResponseFromView maps a settings view onto the response shape
func SettingsResponseFromView(v *settingsapp.SettingsView) SettingsResponse {
	return SettingsResponse{
		ShopifyStoreURL:       v.ShopStoreURL,
		ShopifyAccessTokenSet: v.ShopAccessTokenSet,
		ZRExpressTokenSet:     v.CarrierTokenSet,
		ZRExpressKeySet:       v.CarrierKeySet,
		UpdatedAt:             v.UpdatedAt,
	}
}

// SaveSettingsRequest is the body of PUT /settings. Empty secret fields
// preserve the stored values.
type SaveSettingsRequest struct {
	ShopifyStoreURL    string `json:"shopify_store_url"`
	ShopifyAccessToken string `json:"shopify_access_token"`
	ZRExpressToken     string `json:"zrexpress_token"`
	ZRExpressKey       string `json:"zrexpress_key"`
}

// ConnectionStatusResponse reports a single integration probe
type ConnectionStatusResponse struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// TestConnectionsResponse reports both integration probes
type TestConnectionsResponse struct {
	Shopify   ConnectionStatusResponse `json:"shopify"`
	ZRExpress ConnectionStatusResponse `json:"zrexpress"`
}
