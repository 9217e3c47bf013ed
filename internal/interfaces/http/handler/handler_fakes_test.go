package handler

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/a7delivery/backend/internal/application/identity"
	orderapp "github.com/a7delivery/backend/internal/application/orders"
	settingsapp "github.com/a7delivery/backend/internal/application/settings"
	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/a7delivery/backend/internal/domain/integration"
	"github.com/a7delivery/backend/internal/domain/orders"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/a7delivery/backend/internal/infrastructure/auth"
	"github.com/a7delivery/backend/internal/infrastructure/config"
	"github.com/a7delivery/backend/internal/interfaces/http/middleware"
)

// memUserRepo is an in-memory identity.UserRepository for handler tests
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*identity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, user.Username) {
			return shared.ErrAlreadyExists
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return shared.ErrNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*identity.User, 0, len(r.users))
	for _, u := range r.users {
		if u.IsAdmin() {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// memOrderRepo is an in-memory orders.OrderRepository for handler tests
type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*orders.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*orders.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, o *orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.ShopOrderID == o.ShopOrderID {
			return shared.ErrAlreadyExists
		}
	}
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, o *orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return shared.ErrNotFound
	}
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *memOrderRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*orders.Order, 0, len(ids))
	for _, id := range ids {
		if o, ok := r.orders[id]; ok {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindByShopOrderID(_ context.Context, shopOrderID string) (*orders.Order, error) {
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

func (r *memOrderRepo) FindAll(_ context.Context, filter orders.Filter) ([]*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*orders.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrderRepo) ExistsByShopOrderID(ctx context.Context, shopOrderID string) (bool, error) {
	_, err := r.FindByShopOrderID(ctx, shopOrderID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *memOrderRepo) CountByStatus(_ context.Context) (*orders.StatusCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var counts orders.StatusCounts
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
	return &counts, nil
}

// memSettingsRepo is an in-memory settings.Repository for handler tests
type memSettingsRepo struct {
	mu     sync.Mutex
	stored *settings.IntegrationSettings
}

func (r *memSettingsRepo) Get(_ context.Context) (*settings.IntegrationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return &settings.IntegrationSettings{}, nil
	}
	clone := *r.stored
	return &clone, nil
}

func (r *memSettingsRepo) Save(_ context.Context, s *settings.IntegrationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	r.stored = &clone
	return nil
}

// stubPlatform is a canned integration.ShopPlatform
type stubPlatform struct {
	orders []integration.PlatformOrder
	err    error
	status integration.ConnectionStatus
}

func (p *stubPlatform) PullOrders(_ context.Context, _ integration.ShopCredentials) ([]integration.PlatformOrder, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.orders, nil
}

func (p *stubPlatform) TestConnection(_ context.Context, _ integration.ShopCredentials) integration.ConnectionStatus {
	return p.status
}

// stubCarrier is a canned integration.Carrier that accepts every parcel
type stubCarrier struct {
	err    error
	status integration.ConnectionStatus
}

func (c *stubCarrier) Dispatch(_ context.Context, _ integration.CarrierCredentials, parcels []integration.Parcel) (*integration.DispatchResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	result := &integration.DispatchResult{
		SuccessCount: len(parcels),
		DispatchedAt: time.Now(),
	}
	for _, p := range parcels {
		result.AcceptedRefs = append(result.AcceptedRefs, p.OrderRef)
	}
	result.Finalize()
	return result, nil
}

func (c *stubCarrier) TestConnection(_ context.Context, _ integration.CarrierCredentials) integration.ConnectionStatus {
	return c.status
}

// testEnv bundles the wired router and its backing fakes
type testEnv struct {
	router       *gin.Engine
	jwtService   *auth.JWTService
	userRepo     *memUserRepo
	orderRepo    *memOrderRepo
	settingsRepo *memSettingsRepo
	platform     *stubPlatform
	carrier      *stubCarrier
}

// newTestEnv wires the full HTTP surface over in-memory repositories
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	env := &testEnv{
		jwtService:   auth.NewJWTService(config.JWTConfig{Secret: "test-secret-key-that-is-long-enough", TokenExpiration: time.Hour, Issuer: "test"}),
		userRepo:     newMemUserRepo(),
		orderRepo:    newMemOrderRepo(),
		settingsRepo: &memSettingsRepo{},
		platform:     &stubPlatform{},
		carrier:      &stubCarrier{},
	}

	logger := zap.NewNop()
	authService := identityapp.NewAuthService(env.userRepo, env.jwtService, logger)
	userService := identityapp.NewUserService(env.userRepo, logger)
	orderService := orderapp.NewOrderService(env.orderRepo, env.settingsRepo, env.platform, env.carrier, logger)
	settingsService := settingsapp.NewService(env.settingsRepo, env.platform, env.carrier, logger)

	authHandler := NewAuthHandler(authService, logger)
	userHandler := NewUserHandler(userService, logger)
	orderHandler := NewOrderHandler(orderService, logger)
	settingsHandler := NewSettingsHandler(settingsService, logger)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.JWTAuthMiddleware(env.jwtService))

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authHandler.Me)
	v1.POST("/auth/logout", authHandler.Logout)

	ordersGroup := v1.Group("/orders")
	ordersGroup.GET("", orderHandler.List)
	ordersGroup.GET("/sync", orderHandler.Sync)
	ordersGroup.GET("/stats", orderHandler.Stats)
	ordersGroup.PATCH("/:id", orderHandler.Update)
	ordersGroup.POST("/send-selected", orderHandler.SendSelected)

	settingsGroup := v1.Group("/settings")
	settingsGroup.GET("", settingsHandler.Get)
	settingsGroup.PUT("", settingsHandler.Save)
	settingsGroup.POST("/test", settingsHandler.Test)

	usersGroup := v1.Group("/users", middleware.RequireAdmin())
	usersGroup.GET("", userHandler.List)
	usersGroup.POST("", userHandler.Create)
	usersGroup.PUT("/:id", userHandler.Update)
	usersGroup.PATCH("/:id/toggle", userHandler.Toggle)
	usersGroup.DELETE("/:id", userHandler.Delete)

	env.router = r
	return env
}

// seedUser inserts an account and returns it
func (env *testEnv) seedUser(t *testing.T, username, password string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, password, role)
	require.NoError(t, err)
	require.NoError(t, env.userRepo.Create(context.Background(), user))
	return user
}

// seedOrder inserts an order and returns it
func (env *testEnv) seedOrder(t *testing.T, shopOrderID, orderNumber string) *orders.Order {
	t.Helper()
	order, err := orders.NewOrder(shopOrderID, orderNumber)
	require.NoError(t, err)
	require.NoError(t, env.orderRepo.Create(context.Background(), order))
	return order
}

// configureSettings stores working integration credentials
func (env *testEnv) configureSettings(t *testing.T) {
	t.Helper()
	require.NoError(t, env.settingsRepo.Save(context.Background(), &settings.IntegrationSettings{
		ShopStoreURL:    "https://demo.myshopify.com",
		ShopAccessToken: "shpat_test",
		CarrierToken:    "zr-token",
		CarrierKey:      "zr-key",
	}))
}

// tokenFor issues a bearer token for the given user
func (env *testEnv) tokenFor(t *testing.T, user *identity.User) string {
	t.Helper()
	token, err := env.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	require.NoError(t, err)
	return token.AccessToken
}

// do performs a request against the wired router
func (env *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
