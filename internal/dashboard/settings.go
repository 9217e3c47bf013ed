package dashboard

import (
	"context"
	"strings"
)

// SettingsPanel drives the integration settings screen
type SettingsPanel struct {
	client *Client
}

// NewSettingsPanel creates a settings panel
func NewSettingsPanel(client *Client) *SettingsPanel {
	return &SettingsPanel{client: client}
}

// Load fetches the masked settings
func (p *SettingsPanel) Load(ctx context.Context) (*Settings, error) {
	return p.client.Settings(ctx)
}

// Save validates and stores the settings. The store URL is required;
// empty secret fields keep the stored values on the backend.
func (p *SettingsPanel) Save(ctx context.Context, input SettingsInput) (*Settings, error) {
	if strings.TrimSpace(input.ShopifyStoreURL) == "" {
		return nil, &ValidationError{Message: "store URL is required"}
	}
	return p.client.SaveSettings(ctx, input)
}

// TestConnections probes both integrations once
func (p *SettingsPanel) TestConnections(ctx context.Context) (*ConnectionsResult, error) {
	return p.client.TestConnections(ctx)
}
