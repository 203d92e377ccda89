package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var checkoutNow = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

type recordingNotifier struct {
	mu            sync.Mutex
	confirmations []OrderConfirmation
	err           error
}

func (n *recordingNotifier) NotifyOrderConfirmed(_ context.Context, c OrderConfirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, c)
	return n.err
}

func (n *recordingNotifier) sent() []OrderConfirmation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]OrderConfirmation(nil), n.confirmations...)
}

type serviceEnv struct {
	db        *gorm.DB
	user      *model.User
	carts     CartService
	inventory InventoryService
	locations LocationService
	orders    OrderService
	checkout  CheckoutService
	notifier  *recordingNotifier
}

func setupServiceTest(t *testing.T) *serviceEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	require.NoError(t, db.SeedLocations(testDB))

	cartRepo := repository.NewCartRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	locationRepo := repository.NewLocationRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)

	env := &serviceEnv{
		db:       testDB,
		notifier: &recordingNotifier{},
	}
	env.user = createUser(t, testDB, "shopper@example.com")
	env.carts = NewCartService(testDB, cartRepo, variantRepo)
	env.inventory = NewInventoryService(variantRepo)
	env.locations = NewLocationService(testDB, locationRepo, nil)
	env.orders = NewOrderService(testDB, orderRepo)
	env.checkout = NewCheckoutService(
		testDB, cartRepo, orderRepo, locationRepo, userRepo,
		env.inventory, env.locations,
		NewDeliveryEstimator(DefaultDeliveryRules()),
		env.notifier,
		WithClock(func() time.Time { return checkoutNow }),
	)
	return env
}

func createUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	user := &model.User{Email: email, Name: "Test Shopper", Role: model.RoleCustomer}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

// createVariant creates a product with one variant; an empty price leaves it unpriced.
func createVariant(t *testing.T, testDB *gorm.DB, name, price string, quantity int) *model.Variant {
	product := &model.Product{Name: name + " Product"}
	require.NoError(t, testDB.Create(product).Error)

	variant := &model.Variant{ProductID: product.ID, Name: name, SKU: "SKU-" + name, Quantity: quantity}
	if price != "" {
		p := model.MustMoney(price)
		variant.Price = &p
	}
	require.NoError(t, testDB.Create(variant).Error)
	return variant
}

func (env *serviceEnv) addToCart(t *testing.T, userID, variantID uint, qty int) {
	_, _, err := env.carts.AddItem(context.Background(), userID, variantID, qty)
	require.NoError(t, err)
}

func (env *serviceEnv) stockOf(t *testing.T, variantID uint) int {
	var variant model.Variant
	require.NoError(t, env.db.First(&variant, variantID).Error)
	return variant.Quantity
}

func (env *serviceEnv) count(t *testing.T, m interface{}) int64 {
	var n int64
	require.NoError(t, env.db.Model(m).Count(&n).Error)
	return n
}

func homeDelivery(userID uint, city string) CheckoutInput {
	return CheckoutInput{
		UserID:         userID,
		PaymentMethod:  model.PaymentMethodCOD,
		DeliveryMethod: model.DeliveryMethodHomeDelivery,
		Address: &AddressDetails{
			HouseNumber: 12,
			Street:      "Congress Ave",
			City:        city,
			State:       "TX",
		},
	}
}
