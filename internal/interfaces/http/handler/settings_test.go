package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/a7delivery/backend/internal/domain/integration"
)

func TestGetSettingsMasksSecrets(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret-password", identity.RoleUser)
	env.configureSettings(t)

	w := env.do(http.MethodGet, "/api/v1/settings", env.tokenFor(t, user), "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data SettingsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://demo.myshopify.com", body.Data.ShopifyStoreURL)
	assert.True(t, body.Data.ShopifyAccessTokenSet)
	assert.True(t, body.Data.ZRExpressTokenSet)
	assert.True(t, body.Data.ZRExpressKeySet)
	assert.NotContains(t, w.Body.String(), "shpat_test")
	assert.NotContains(t, w.Body.String(), "zr-token")
}

func TestSaveSettings(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret-password", identity.RoleUser)

	w := env.do(http.MethodPut, "/api/v1/settings", env.tokenFor(t, user),
		`{"shopify_store_url":"demo.myshopify.com","shopify_access_token":"shpat_new","zrexpress_token":"tok","zrexpress_key":"key"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shopify_access_token_set":true`)

	stored, err := env.settingsRepo.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "shpat_new", stored.ShopAccessToken)
}

func TestSaveSettingsKeepsStoredSecrets(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret-password", identity.RoleUser)
	env.configureSettings(t)

	w := env.do(http.MethodPut, "/api/v1/settings", env.tokenFor(t, user),
		`{"shopify_store_url":"https://demo.myshopify.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.settingsRepo.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "shpat_test", stored.ShopAccessToken)
	assert.Equal(t, "zr-key", stored.CarrierKey)
}

func TestTestConnections(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "secret-password", identity.RoleUser)
	env.configureSettings(t)
	env.platform.status = integration.ConnectionStatus{OK: true, Detail: "Demo Shop (demo.myshopify.com)"}
	env.carrier.status = integration.ConnectionStatus{OK: false, Detail: "authentication failed"}

	w := env.do(http.MethodPost, "/api/v1/settings/test", env.tokenFor(t, user), "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data TestConnectionsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Shopify.OK)
	assert.False(t, body.Data.ZRExpress.OK)
	assert.Equal(t, "authentication failed", body.Data.ZRExpress.Detail)
}
