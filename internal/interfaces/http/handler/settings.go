package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	settingsapp "github.com/a7delivery/backend/internal/application/settings"
	"github.com/a7delivery/backend/internal/interfaces/http/middleware"
)

// SettingsHandler handles integration settings endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
	logger          *zap.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *settingsapp.Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get returns the stored settings with secrets masked out
// GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	view, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SettingsResponseFromView(view))
}

// Save stores the settings. Empty secret fields keep the stored values.
// PUT /api/v1/settings
func (h *SettingsHandler) Save(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	view, err := h.settingsService.Save(c.Request.Context(), settingsapp.SaveSettingsInput{
		ShopStoreURL:    req.ShopifyStoreURL,
		ShopAccessToken: req.ShopifyAccessToken,
		CarrierToken:    req.ZRExpressToken,
		CarrierKey:      req.ZRExpressKey,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SettingsResponseFromView(view))
}

// Test probes both integrations with the stored credentials
// POST /api/v1/settings/test
func (h *SettingsHandler) Test(c *gin.Context) {
	result, err := h.settingsService.TestConnections(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TestConnectionsResponse{
		Shopify: ConnectionStatusResponse{
			OK:     result.Shop.OK,
			Detail: result.Shop.Detail,
		},
		ZRExpress: ConnectionStatusResponse{
			OK:     result.Carrier.OK,
			Detail: result.Carrier.Detail,
		},
	})
}
