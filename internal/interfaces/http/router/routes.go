package router

import (
	"github.com/a7delivery/backend/internal/interfaces/http/handler"
	"github.com/a7delivery/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the HTTP handlers wired into the API
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Orders   *handler.OrderHandler
	Settings *handler.SettingsHandler
}

// AuthRoutes builds the authentication route group
func AuthRoutes(h *handler.AuthHandler) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		POST("/login", h.Login).
		GET("/me", h.Me).
		POST("/logout", h.Logout)
}

// OrderRoutes builds the order route group
func OrderRoutes(h *handler.OrderHandler) *DomainGroup {
	return NewDomainGroup("orders", "/orders").
		GET("", h.List).
		GET("/sync", h.Sync).
		GET("/stats", h.Stats).
		PATCH("/:id", h.Update).
		POST("/send-selected", h.SendSelected)
}

// SettingsRoutes builds the integration settings route group
func SettingsRoutes(h *handler.SettingsHandler) *DomainGroup {
	return NewDomainGroup("settings", "/settings").
		GET("", h.Get).
		PUT("", h.Save).
		POST("/test", h.Test)
}

// UserRoutes builds the admin-only account administration route group
func UserRoutes(h *handler.UserHandler) *DomainGroup {
	return NewDomainGroup("users", "/users").
		Use(middleware.RequireAdmin()).
		GET("", h.List).
		POST("", h.Create).
		PUT("/:id", h.Update).
		PATCH("/:id/toggle", h.Toggle).
		DELETE("/:id", h.Delete)
}

// Setup registers every API route group on the router
func Setup(r *Router, h Handlers) {
	r.Register(AuthRoutes(h.Auth)).
		Register(OrderRoutes(h.Orders)).
		Register(SettingsRoutes(h.Settings)).
		Register(UserRoutes(h.Users))
	r.Setup()
}
