package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightbuy/brightbuy-backend/config"
	"github.com/brightbuy/brightbuy-backend/internal/app/controller"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/db"
	"github.com/brightbuy/brightbuy-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouterTest(t *testing.T, origins []string) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cartRepo := repository.NewCartRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	locationRepo := repository.NewLocationRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)

	inventory := service.NewInventoryService(variantRepo)
	locations := service.NewLocationService(testDB, locationRepo, nil)
	orders := service.NewOrderService(testDB, orderRepo)
	checkout := service.NewCheckoutService(testDB, cartRepo, orderRepo, locationRepo, userRepo,
		inventory, locations, nil, nil)

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: origins},
	}
	r := NewRouter(
		controller.NewCartController(service.NewCartService(testDB, cartRepo, variantRepo), checkout),
		controller.NewOrderController(orders, checkout),
		controller.NewLocationController(locations),
		controller.NewAdminController(orders, inventory),
		middleware.NewAuthMiddleware("router-test-secret"),
		cfg,
	)
	return r.Setup()
}

func TestRouter_Health(t *testing.T) {
	engine := setupRouterTest(t, []string{"http://localhost:3000"})

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "healthy")
	}
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	engine := setupRouterTest(t, []string{"http://localhost:3000"})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	engine := setupRouterTest(t, []string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/locations/cities", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig_NoOrigins(t *testing.T) {
	cfg := corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)
}

func TestRouter_CheckoutAlias(t *testing.T) {
	engine := setupRouterTest(t, nil)

	for _, path := range []string{"/api/v1/orders/checkout", "/api/v1/checkout"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
