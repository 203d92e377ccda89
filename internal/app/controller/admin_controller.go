package controller

import (
	"net/http"

	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/errors"
	"github.com/brightbuy/brightbuy-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	orderService     service.OrderService
	inventoryService service.InventoryService
}

func NewAdminController(orderService service.OrderService, inventoryService service.InventoryService) *AdminController {
	return &AdminController{
		orderService:     orderService,
		inventoryService: inventoryService,
	}
}

type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AdjustStockRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ListOrders
// GET /api/v1/admin/orders?offset=0&limit=20
func (ctrl *AdminController) ListOrders(c *gin.Context) {
	page, err := ctrl.orderService.ListAll(c.Request.Context(), queryInt(c, "offset", 0), queryInt(c, "limit", 0))
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ConfirmPayment marks a pending (cash on delivery) payment completed
// PUT /api/v1/admin/orders/:id/payment/confirm
func (ctrl *AdminController) ConfirmPayment(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.ConfirmPayment(c.Request.Context(), orderID)
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	adminID, _ := middleware.GetUserID(c)
	middleware.GetLoggerFromContext(c).Info("Payment confirmed by admin", map[string]interface{}{
		"order_id": orderID,
		"admin_id": adminID,
	})
	c.JSON(http.StatusOK, order)
}

// UpdateDeliveryStatus
// PUT /api/v1/admin/orders/:id/delivery-status
func (ctrl *AdminController) UpdateDeliveryStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithValidationError(c, map[string]string{"status": "status is required"})
		return
	}

	order, err := ctrl.orderService.UpdateDeliveryStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// AdjustStock sets a variant's stock to an absolute quantity
// PUT /api/v1/admin/variants/:id/stock
func (ctrl *AdminController) AdjustStock(c *gin.Context) {
	variantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithValidationError(c, map[string]string{"quantity": "quantity is required"})
		return
	}

	variant, err := ctrl.inventoryService.AdjustStock(variantID, *req.Quantity)
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, variant)
}

// LowStock lists variants below the threshold (default 10)
// GET /api/v1/admin/variants/low-stock?threshold=10
func (ctrl *AdminController) LowStock(c *gin.Context) {
	threshold := queryInt(c, "threshold", service.DefaultLowStockThreshold)

	variants, err := ctrl.inventoryService.ListLowStock(threshold)
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threshold": threshold,
		"variants":  variants,
		"count":     len(variants),
	})
}
