package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartController_AddToCart(t *testing.T) {
	env := setupControllerTest(t)
	phone := env.createVariant(t, "Phone", "19.99", 20)

	w := env.do(t, http.MethodPost, "/api/v1/cart/add", map[string]interface{}{
		"user_id":    env.user.ID,
		"variant_id": phone.ID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotZero(t, body["cart_item_id"])
	assert.Equal(t, float64(2), body["quantity"])
	assert.Equal(t, "19.99", body["price"])
	assert.Equal(t, "Phone", body["variant_name"])
	assert.Equal(t, "Phone Product", body["product_name"])
	assert.Equal(t, "39.98", body["cart_total"])
}

func TestCartController_AddToCart_Errors(t *testing.T) {
	env := setupControllerTest(t)
	unpriced := env.createVariant(t, "Prototype", "", 5)

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"missing quantity", map[string]interface{}{"user_id": env.user.ID, "variant_id": unpriced.ID}, http.StatusBadRequest, "VALIDATION_INVALID_INPUT", ""},
		{"unknown variant", map[string]interface{}{"user_id": env.user.ID, "variant_id": 9999, "quantity": 1}, http.StatusNotFound, "VARIANT_NOT_FOUND", "Variant not found"},
		{"unpriced variant", map[string]interface{}{"user_id": env.user.ID, "variant_id": unpriced.ID, "quantity": 1}, http.StatusBadRequest, "VARIANT_UNPRICED", "Variant price not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/cart/add", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantCode, body["error"])
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body["message"])
			}
		})
	}
}

func TestCartController_GetCart_Empty(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/cart/%d", env.user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(0), body["cart_id"])
	assert.Equal(t, "0.00", body["total_amount"])
	assert.Equal(t, []interface{}{}, body["cart_items"])
}

func TestCartController_UpdateRemoveClear(t *testing.T) {
	env := setupControllerTest(t)
	a := env.createVariant(t, "A", "10.00", 20)
	b := env.createVariant(t, "B", "5.00", 20)

	added := decode(t, env.do(t, http.MethodPost, "/api/v1/cart/add", map[string]interface{}{
		"user_id": env.user.ID, "variant_id": a.ID, "quantity": 1,
	}))
	env.do(t, http.MethodPost, "/api/v1/cart/add", map[string]interface{}{
		"user_id": env.user.ID, "variant_id": b.ID, "quantity": 1,
	})
	itemPath := fmt.Sprintf("/api/v1/cart/item/%v", added["cart_item_id"])

	w := env.do(t, http.MethodPut, itemPath, map[string]interface{}{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "35.00", decode(t, w)["total_amount"])

	w = env.do(t, http.MethodPut, itemPath, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, itemPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5.00", decode(t, w)["total_amount"])

	w = env.do(t, http.MethodDelete, itemPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", decode(t, w)["error"])

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d", env.user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/cart/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_NOT_FOUND", decode(t, w)["error"])

	w = env.do(t, http.MethodGet, "/api/v1/cart/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_ID", decode(t, w)["error"])
}

func TestCartController_DeliveryEstimate(t *testing.T) {
	env := setupControllerTest(t)
	v := env.createVariant(t, "Lamp", "30.00", 50)
	env.do(t, http.MethodPost, "/api/v1/cart/add", map[string]interface{}{
		"user_id": env.user.ID, "variant_id": v.ID, "quantity": 1,
	})

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/cart/delivery-estimate/%d", env.user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["is_range"])
	assert.Equal(t, float64(5), body["main_city_days"])
	assert.Equal(t, float64(7), body["other_city_days"])

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/cart/delivery-estimate/%d?city=Austin", env.user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, float64(5), body["estimated_days"])
	assert.NotEmpty(t, body["estimated_delivery_date"])

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/cart/delivery-estimate/%d?method=drone", env.user.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
