package controller

import (
	"net/http"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/errors"
	"github.com/brightbuy/brightbuy-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService     service.CartService
	checkoutService service.CheckoutService
}

func NewCartController(cartService service.CartService, checkoutService service.CheckoutService) *CartController {
	return &CartController{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

type AddToCartRequest struct {
	UserID    uint `json:"user_id" binding:"required"`
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type AddToCartResponse struct {
	service.CartLine
	CartTotal model.Money `json:"cart_total"`
}

type DeliveryEstimateResponse struct {
	service.DeliveryEstimate
	EstimatedDeliveryDate string `json:"estimated_delivery_date,omitempty"`
}

// AddToCart adds a variant to the user's cart, creating the cart on first use
// POST /api/v1/cart/add
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.RespondWithValidationError(c, map[string]string{"body": err.Error()})
		return
	}

	line, total, err := ctrl.cartService.AddItem(c.Request.Context(), req.UserID, req.VariantID, req.Quantity)
	if err != nil {
		log.Warn("Failed to add item to cart", map[string]interface{}{
			"user_id":    req.UserID,
			"variant_id": req.VariantID,
			"error":      err.Error(),
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AddToCartResponse{CartLine: *line, CartTotal: total})
}

// GetCart returns the cart, or an empty cart with id 0 when the user has none
// GET /api/v1/cart/:user_id
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	view, err := ctrl.cartService.View(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateCartItem sets the quantity; zero or less removes the line
// PUT /api/v1/cart/item/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithValidationError(c, map[string]string{"quantity": "quantity is required"})
		return
	}

	view, err := ctrl.cartService.UpdateItem(c.Request.Context(), itemID, *req.Quantity)
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RemoveCartItem
// DELETE /api/v1/cart/item/:id
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := ctrl.cartService.RemoveItem(c.Request.Context(), itemID)
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ClearCart
// DELETE /api/v1/cart/:user_id
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := ctrl.cartService.Clear(c.Request.Context(), userID); err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// DeliveryEstimate previews delivery for the current cart; nothing is locked or written
// GET /api/v1/cart/delivery-estimate/:user_id?method=home_delivery&city=Austin
func (ctrl *CartController) DeliveryEstimate(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	method := model.DeliveryMethod(c.DefaultQuery("method", string(model.DeliveryMethodHomeDelivery)))
	estimate, err := ctrl.checkoutService.PreviewDelivery(c.Request.Context(), userID, method, c.Query("city"))
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeliveryEstimateResponse{
		DeliveryEstimate:      *estimate,
		EstimatedDeliveryDate: estimate.DateString(),
	})
}
