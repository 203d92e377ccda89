package service

import (
	"context"
	"testing"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, env *serviceEnv, userID uint, variant *model.Variant, qty int) *CheckoutResult {
	env.addToCart(t, userID, variant.ID, qty)
	result, err := env.checkout.Checkout(context.Background(), homeDelivery(userID, "Austin"))
	require.NoError(t, err)
	return result
}

func TestOrderService_ListForUser(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	a := createVariant(t, env.db, "Blender", "35.00", 40)
	b := createVariant(t, env.db, "Toaster", "25.50", 40)

	first := placeOrder(t, env, env.user.ID, a, 1)
	second := placeOrder(t, env, env.user.ID, b, 2)

	other := createUser(t, env.db, "someone@example.com")
	placeOrder(t, env, other.ID, a, 1)

	orders, err := env.orders.ListForUser(ctx, env.user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.OrderID, orders[0].OrderID)
	assert.Equal(t, first.OrderID, orders[1].OrderID)

	latest := orders[0]
	assert.Equal(t, "51.00", latest.TotalAmount.String())
	assert.Equal(t, model.PaymentMethodCOD, latest.PaymentMethod)
	assert.Equal(t, model.PaymentStatusPending, latest.PaymentStatus)
	assert.Equal(t, model.DeliveryStatusPending, latest.DeliveryStatus)
	require.NotNil(t, latest.EstimatedDeliveryDate)
	assert.Equal(t, "2025-03-15", *latest.EstimatedDeliveryDate)
	require.Len(t, latest.Items, 1)
	assert.Equal(t, "Toaster", latest.Items[0].VariantName)
	assert.Equal(t, "Toaster Product", latest.Items[0].ProductName)

	none, err := env.orders.ListForUser(ctx, 4242)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderService_Detail(t *testing.T) {
	env := setupServiceTest(t)
	v := createVariant(t, env.db, "Kettle", "40.00", 40)
	result := placeOrder(t, env, env.user.ID, v, 1)

	detail, err := env.orders.Detail(context.Background(), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, result.OrderID, detail.OrderID)
	require.NotNil(t, detail.Address)
	assert.Equal(t, "Austin", detail.Address.City)

	_, err = env.orders.Detail(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_ListAll(t *testing.T) {
	env := setupServiceTest(t)
	v := createVariant(t, env.db, "Fan", "10.00", 40)
	for i := 0; i < 3; i++ {
		placeOrder(t, env, env.user.ID, v, 1)
	}

	page, err := env.orders.ListAll(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Orders, 1)
	assert.Equal(t, 1, page.Offset)

	page, err = env.orders.ListAll(context.Background(), -5, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, defaultOrderPageSize, page.Limit)
	assert.Len(t, page.Orders, 3)
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	v := createVariant(t, env.db, "Heater", "80.00", 40)
	result := placeOrder(t, env, env.user.ID, v, 1)

	summary, err := env.orders.ConfirmPayment(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, summary.PaymentStatus)

	_, err = env.orders.ConfirmPayment(ctx, result.OrderID)
	assert.ErrorIs(t, err, ErrPaymentAlreadyCompleted)

	_, err = env.orders.ConfirmPayment(ctx, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateDeliveryStatus(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	v := createVariant(t, env.db, "Vacuum", "120.00", 40)
	result := placeOrder(t, env, env.user.ID, v, 1)

	summary, err := env.orders.UpdateDeliveryStatus(ctx, result.OrderID, "Out for Delivery")
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryStatusOutForDelivery, summary.DeliveryStatus)

	summary, err = env.orders.UpdateDeliveryStatus(ctx, result.OrderID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryStatusDelivered, summary.DeliveryStatus)

	_, err = env.orders.UpdateDeliveryStatus(ctx, result.OrderID, "lost")
	assert.ErrorIs(t, err, ErrInvalidDeliveryStatus)

	_, err = env.orders.UpdateDeliveryStatus(ctx, 9999, "Shipped")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
