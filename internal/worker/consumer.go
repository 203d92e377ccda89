package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/queue"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// Consumer handles the background tasks enqueued by checkout and the scheduler.
type Consumer struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	inventory service.InventoryService
	notifier  service.OrderNotifier
}

// NewConsumer builds a consumer. notifier does the actual delivery, normally an EmailNotifier.
func NewConsumer(orders repository.OrderRepository, users repository.UserRepository, inventory service.InventoryService, notifier service.OrderNotifier) *Consumer {
	if notifier == nil {
		notifier = service.NoopNotifier{}
	}
	return &Consumer{
		orders:    orders,
		users:     users,
		inventory: inventory,
		notifier:  notifier,
	}
}

func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskOrderConfirmed, c.HandleOrderConfirmed)
	mux.HandleFunc(queue.TaskLowStockReport, c.HandleLowStockReport)
}

// HandleOrderConfirmed reloads the committed order and sends its confirmation.
// A missing order is not retried.
func (c *Consumer) HandleOrderConfirmed(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseOrderConfirmedPayload(task)
	if err != nil {
		logger.Warn("Invalid order confirmed payload", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.OrderID == 0 {
		return nil
	}

	order, err := c.orders.FindByID(payload.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order for confirmation not found", map[string]interface{}{
				"order_id": payload.OrderID,
			})
			return fmt.Errorf("order %d: %w", payload.OrderID, asynq.SkipRetry)
		}
		return err
	}

	var user *model.User
	if order.UserID != 0 {
		user, err = c.users.FindByID(order.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	confirmation := service.BuildOrderConfirmation(order, user)
	if err := c.notifier.NotifyOrderConfirmed(ctx, confirmation); err != nil {
		logger.Error("Failed to send order confirmation", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

// HandleLowStockReport re-reads stock so variants restocked since the sweep are not reported.
func (c *Consumer) HandleLowStockReport(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseLowStockReportPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	variants, err := c.inventory.ListLowStock(payload.Threshold)
	if err != nil {
		return err
	}

	reported := make(map[uint]bool, len(payload.VariantIDs))
	for _, id := range payload.VariantIDs {
		reported[id] = true
	}

	still := 0
	for _, v := range variants {
		if len(reported) > 0 && !reported[v.ID] {
			continue
		}
		still++
		logger.Warn("Variant stock is low", map[string]interface{}{
			"variant_id":   v.ID,
			"sku":          v.SKU,
			"product_name": v.ProductName(),
			"quantity":     v.Quantity,
			"threshold":    payload.Threshold,
		})
	}

	logger.Info("Low stock report processed", map[string]interface{}{
		"reported":  len(payload.VariantIDs),
		"still_low": still,
	})
	return nil
}
