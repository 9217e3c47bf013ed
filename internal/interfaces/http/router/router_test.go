package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("system", "/system")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/system/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("orders", "/orders")
		assert.Equal(t, "orders", g.Name())
	})

	t.Run("registers routes for all methods", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("orders", "/orders")
		g.GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
			POST("/sync", func(c *gin.Context) { c.String(http.StatusOK, "sync") }).
			PUT("/:id", func(c *gin.Context) { c.String(http.StatusOK, "put") }).
			PATCH("/:id", func(c *gin.Context) { c.String(http.StatusOK, "patch") }).
			DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		tests := []struct {
			method string
			path   string
			want   int
		}{
			{"GET", "/api/v1/orders", http.StatusOK},
			{"POST", "/api/v1/orders/sync", http.StatusOK},
			{"PUT", "/api/v1/orders/123", http.StatusOK},
			{"PATCH", "/api/v1/orders/123", http.StatusOK},
			{"DELETE", "/api/v1/orders/123", http.StatusNoContent},
		}
		for _, tt := range tests {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("users", "/users")

		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})

		g.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/users", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	ordersGroup := NewDomainGroup("orders", "/orders")
	ordersGroup.GET("/stats", func(c *gin.Context) {
		c.String(http.StatusOK, "stats")
	})

	settingsGroup := NewDomainGroup("settings", "/settings")
	settingsGroup.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "settings")
	})

	r.Register(ordersGroup).Register(settingsGroup)
	r.Setup()

	req1 := httptest.NewRequest("GET", "/api/v1/orders/stats", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "stats", w1.Body.String())

	req2 := httptest.NewRequest("GET", "/api/v1/settings", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "settings", w2.Body.String())
}
