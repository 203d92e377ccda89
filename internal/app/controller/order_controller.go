package controller

import (
	"net/http"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/errors"
	"github.com/brightbuy/brightbuy-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService    service.OrderService
	checkoutService service.CheckoutService
}

func NewOrderController(orderService service.OrderService, checkoutService service.CheckoutService) *OrderController {
	return &OrderController{
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

type CheckoutRequest struct {
	UserID         uint                    `json:"user_id" binding:"required"`
	PaymentMethod  string                  `json:"payment_method" binding:"required"`
	DeliveryMethod string                  `json:"delivery_method" binding:"required"`
	AddressID      *uint                   `json:"address_id"`
	AddressDetails *service.AddressDetails `json:"address_details"`
	CardDetails    *service.CardDetails    `json:"card_details"`
}

// Checkout converts the user's cart into an order
// POST /api/v1/orders/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.RespondWithValidationError(c, map[string]string{"body": err.Error()})
		return
	}

	result, err := ctrl.checkoutService.Checkout(c.Request.Context(), service.CheckoutInput{
		UserID:         req.UserID,
		PaymentMethod:  model.PaymentMethod(req.PaymentMethod),
		DeliveryMethod: model.DeliveryMethod(req.DeliveryMethod),
		AddressID:      req.AddressID,
		Address:        req.AddressDetails,
		Card:           req.CardDetails,
	})
	if err != nil {
		log.Warn("Checkout failed", map[string]interface{}{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id":     result.OrderID,
		"user_id":      result.UserID,
		"total_amount": result.TotalAmount.String(),
	})
	c.JSON(http.StatusCreated, result)
}

// GetUserOrders returns the user's orders, newest first
// GET /api/v1/orders/user/:user_id
func (ctrl *OrderController) GetUserOrders(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	orders, err := ctrl.orderService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder
// GET /api/v1/orders/:order_id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Detail(c.Request.Context(), orderID)
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
