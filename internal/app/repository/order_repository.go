package repository

import (
	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(order *model.Order) error
	CreateItems(items []model.OrderItem) error
	CreatePayment(payment *model.Payment) error
	CreateCardDetail(card *model.CardDetail) error
	CreateDelivery(delivery *model.Delivery) error
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindAll(offset, limit int) ([]model.Order, int64, error)
	UpdatePaymentStatus(orderID uint, from, to model.PaymentStatus) (int64, error)
	UpdateDeliveryStatus(orderID uint, status model.DeliveryStatus) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &orderRepository{db: tx}
}

func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	}).Preload("Items.Variant.Product").
		Preload("Payment.Card").
		Preload("Delivery.Address")
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id":      order.UserID,
		"cart_id":      order.CartID,
		"total_amount": order.TotalAmount.String(),
	})

	if err := r.db.Omit("Items", "Payment", "Delivery", "User").Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id":      order.UserID,
			"total_amount": order.TotalAmount.String(),
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
	})
	return nil
}

func (r *orderRepository) CreateItems(items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.Omit("Variant").Create(&items).Error; err != nil {
		logger.Error("Failed to create order items in database", err, map[string]interface{}{
			"order_id": items[0].OrderID,
			"count":    len(items),
		})
		return err
	}
	return nil
}

func (r *orderRepository) CreatePayment(payment *model.Payment) error {
	if err := r.db.Omit("Card").Create(payment).Error; err != nil {
		logger.Error("Failed to create payment in database", err, map[string]interface{}{
			"order_id": payment.OrderID,
			"method":   payment.Method,
		})
		return err
	}
	return nil
}

func (r *orderRepository) CreateCardDetail(card *model.CardDetail) error {
	if err := r.db.Create(card).Error; err != nil {
		logger.Error("Failed to create card detail in database", err, map[string]interface{}{
			"payment_id": card.PaymentID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) CreateDelivery(delivery *model.Delivery) error {
	if err := r.db.Omit("Address").Create(delivery).Error; err != nil {
		logger.Error("Failed to create delivery in database", err, map[string]interface{}{
			"order_id": delivery.OrderID,
			"method":   delivery.Method,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	err := r.preloadOrder().
		Where("user_id = ?", userID).
		Order("order_date DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindAll(offset, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.Model(&model.Order{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count orders in database", err)
		return nil, 0, err
	}

	var orders []model.Order
	err := r.preloadOrder().
		Order("order_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list orders in database", err, map[string]interface{}{
			"offset": offset,
			"limit":  limit,
		})
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdatePaymentStatus moves the payment from one status to another and
// returns zero rows when the current status is not from.
func (r *orderRepository) UpdatePaymentStatus(orderID uint, from, to model.PaymentStatus) (int64, error) {
	result := r.db.Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		logger.Error("Failed to update payment status in database", result.Error, map[string]interface{}{
			"order_id": orderID,
			"status":   to,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *orderRepository) UpdateDeliveryStatus(orderID uint, status model.DeliveryStatus) (int64, error) {
	result := r.db.Model(&model.Delivery{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update delivery status in database", result.Error, map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
