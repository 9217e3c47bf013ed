package dashboard

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsPanelLoad(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(http.MethodGet, "/api/v1/settings", Settings{
		ShopifyStoreURL:       "https://demo.myshopify.com",
		ShopifyAccessTokenSet: true,
	})

	client, _ := backend.newClient("token")
	panel := NewSettingsPanel(client)

	loaded, err := panel.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "https://demo.myshopify.com", loaded.ShopifyStoreURL)
	assert.True(t, loaded.ShopifyAccessTokenSet)
}

func TestSettingsPanelSaveRequiresStoreURL(t *testing.T) {
	backend := newTestBackend(t)
	client, _ := backend.newClient("token")
	panel := NewSettingsPanel(client)

	_, err := panel.Save(t.Context(), SettingsInput{ShopifyStoreURL: "  "})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, backend.callCount(http.MethodPut, "/api/v1/settings"))
}

func TestSettingsPanelSave(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(http.MethodPut, "/api/v1/settings", Settings{
		ShopifyStoreURL:       "https://demo.myshopify.com",
		ShopifyAccessTokenSet: true,
		ZRExpressTokenSet:     true,
		ZRExpressKeySet:       true,
	})

	client, _ := backend.newClient("token")
	panel := NewSettingsPanel(client)

	saved, err := panel.Save(t.Context(), SettingsInput{
		ShopifyStoreURL:    "demo.myshopify.com",
		ShopifyAccessToken: "shpat_x",
	})
	require.NoError(t, err)
	assert.True(t, saved.ZRExpressKeySet)
	assert.Equal(t, 1, backend.callCount(http.MethodPut, "/api/v1/settings"))
}

func TestSettingsPanelTestConnections(t *testing.T) {
	backend := newTestBackend(t)
	backend.respond(http.MethodPost, "/api/v1/settings/test", ConnectionsResult{
		Shopify:   ConnectionStatus{OK: true, Detail: "Demo Shop"},
		ZRExpress: ConnectionStatus{OK: false, Detail: "authentication failed"},
	})

	client, _ := backend.newClient("token")
	panel := NewSettingsPanel(client)

	result, err := panel.TestConnections(t.Context())
	require.NoError(t, err)
	assert.True(t, result.Shopify.OK)
	assert.False(t, result.ZRExpress.OK)
}
