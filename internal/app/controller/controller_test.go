package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type controllerEnv struct {
	db     *gorm.DB
	router *gin.Engine
	user   *model.User
}

func setupControllerTest(t *testing.T) *controllerEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	require.NoError(t, db.SeedLocations(testDB))

	cartRepo := repository.NewCartRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	locationRepo := repository.NewLocationRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)

	inventory := service.NewInventoryService(variantRepo)
	locations := service.NewLocationService(testDB, locationRepo, nil)
	orders := service.NewOrderService(testDB, orderRepo)
	checkout := service.NewCheckoutService(testDB, cartRepo, orderRepo, locationRepo, userRepo,
		inventory, locations, service.NewDeliveryEstimator(service.DefaultDeliveryRules()), service.NoopNotifier{})

	cartController := NewCartController(service.NewCartService(testDB, cartRepo, variantRepo), checkout)
	orderController := NewOrderController(orders, checkout)
	locationController := NewLocationController(locations)
	adminController := NewAdminController(orders, inventory)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/cart/add", cartController.AddToCart)
	v1.GET("/cart/delivery-estimate/:user_id", cartController.DeliveryEstimate)
	v1.PUT("/cart/item/:id", cartController.UpdateCartItem)
	v1.DELETE("/cart/item/:id", cartController.RemoveCartItem)
	v1.GET("/cart/:user_id", cartController.GetCart)
	v1.DELETE("/cart/:user_id", cartController.ClearCart)
	v1.POST("/orders/checkout", orderController.Checkout)
	v1.GET("/orders/user/:user_id", orderController.GetUserOrders)
	v1.GET("/orders/:order_id", orderController.GetOrder)
	v1.GET("/locations/cities", locationController.ListCities)
	v1.GET("/locations/cities/:name", locationController.GetCity)
	v1.GET("/admin/orders", adminController.ListOrders)
	v1.PUT("/admin/orders/:id/payment/confirm", adminController.ConfirmPayment)
	v1.PUT("/admin/orders/:id/delivery-status", adminController.UpdateDeliveryStatus)
	v1.PUT("/admin/variants/:id/stock", adminController.AdjustStock)
	v1.GET("/admin/variants/low-stock", adminController.LowStock)

	user := &model.User{Email: "shopper@example.com", Name: "Shopper", Role: model.RoleCustomer}
	require.NoError(t, testDB.Create(user).Error)

	return &controllerEnv{db: testDB, router: router, user: user}
}

func (env *controllerEnv) createVariant(t *testing.T, name, price string, quantity int) *model.Variant {
	product := &model.Product{Name: name + " Product"}
	require.NoError(t, env.db.Create(product).Error)

	variant := &model.Variant{ProductID: product.ID, Name: name, SKU: "SKU-" + name, Quantity: quantity}
	if price != "" {
		p := model.MustMoney(price)
		variant.Price = &p
	}
	require.NoError(t, env.db.Create(variant).Error)
	return variant
}

func (env *controllerEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
