package service

import (
	"context"
	"errors"
	"time"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

// OrderLine is an order item with the product and variant names it was bought under.
type OrderLine struct {
	OrderItemID uint        `json:"order_item_id"`
	OrderID     uint        `json:"order_id"`
	VariantID   uint        `json:"variant_id"`
	Quantity    int         `json:"quantity"`
	Price       model.Money `json:"price"`
	VariantName string      `json:"variant_name"`
	ProductName string      `json:"product_name"`
	ProductID   uint        `json:"product_id"`
}

type OrderSummary struct {
	OrderID               uint                 `json:"order_id"`
	CartID                uint                 `json:"cart_id"`
	UserID                uint                 `json:"user_id"`
	OrderDate             time.Time            `json:"order_date"`
	TotalAmount           model.Money          `json:"total_amount"`
	PaymentMethod         model.PaymentMethod  `json:"payment_method,omitempty"`
	PaymentStatus         model.PaymentStatus  `json:"payment_status,omitempty"`
	DeliveryMethod        model.DeliveryMethod `json:"delivery_method,omitempty"`
	DeliveryStatus        model.DeliveryStatus `json:"delivery_status,omitempty"`
	EstimatedDeliveryDate *string              `json:"estimated_delivery_date"`
	Address               *model.Address       `json:"address,omitempty"`
	Items                 []OrderLine          `json:"order_items"`
}

type OrderPage struct {
	Orders []OrderSummary `json:"orders"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

type OrderService interface {
	ListForUser(ctx context.Context, userID uint) ([]OrderSummary, error)
	Detail(ctx context.Context, orderID uint) (*OrderSummary, error)
	ListAll(ctx context.Context, offset, limit int) (*OrderPage, error)
	ConfirmPayment(ctx context.Context, orderID uint) (*OrderSummary, error)
	UpdateDeliveryStatus(ctx context.Context, orderID uint, status string) (*OrderSummary, error)
}

type orderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
	}
}

func (s *orderService) orders(ctx context.Context) repository.OrderRepository {
	return s.orderRepo.WithTx(s.db.WithContext(ctx))
}

func (s *orderService) ListForUser(ctx context.Context, userID uint) ([]OrderSummary, error) {
	orders, err := s.orders(ctx).FindByUserID(userID)
	if err != nil {
		return nil, persistenceError("list user orders", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, toOrderSummary(&orders[i]))
	}
	return summaries, nil
}

func (s *orderService) Detail(ctx context.Context, orderID uint) (*OrderSummary, error) {
	order, err := s.findOrder(s.orders(ctx), orderID)
	if err != nil {
		return nil, err
	}
	summary := toOrderSummary(order)
	return &summary, nil
}

func (s *orderService) ListAll(ctx context.Context, offset, limit int) (*OrderPage, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultOrderPageSize
	}
	if limit > maxOrderPageSize {
		limit = maxOrderPageSize
	}

	orders, total, err := s.orders(ctx).FindAll(offset, limit)
	if err != nil {
		return nil, persistenceError("list orders", err)
	}

	page := &OrderPage{
		Orders: make([]OrderSummary, 0, len(orders)),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
	for i := range orders {
		page.Orders = append(page.Orders, toOrderSummary(&orders[i]))
	}
	return page, nil
}

// ConfirmPayment completes a pending (cash on delivery) payment.
func (s *orderService) ConfirmPayment(ctx context.Context, orderID uint) (*OrderSummary, error) {
	orders := s.orders(ctx)

	order, err := s.findOrder(orders, orderID)
	if err != nil {
		return nil, err
	}
	if order.Payment == nil || order.Payment.Status != model.PaymentStatusPending {
		return nil, ErrPaymentAlreadyCompleted
	}

	rows, err := orders.UpdatePaymentStatus(orderID, model.PaymentStatusPending, model.PaymentStatusCompleted)
	if err != nil {
		return nil, persistenceError("confirm payment", err)
	}
	if rows == 0 {
		return nil, ErrPaymentAlreadyCompleted
	}

	logger.Info("Payment confirmed", map[string]interface{}{
		"order_id": orderID,
		"method":   order.Payment.Method,
	})
	return s.Detail(ctx, orderID)
}

func (s *orderService) UpdateDeliveryStatus(ctx context.Context, orderID uint, status string) (*OrderSummary, error) {
	parsed, ok := model.ParseDeliveryStatus(status)
	if !ok {
		return nil, ErrInvalidDeliveryStatus
	}

	orders := s.orders(ctx)
	if _, err := s.findOrder(orders, orderID); err != nil {
		return nil, err
	}

	rows, err := orders.UpdateDeliveryStatus(orderID, parsed)
	if err != nil {
		return nil, persistenceError("update delivery status", err)
	}
	if rows == 0 {
		return nil, ErrOrderNotFound
	}

	logger.Info("Delivery status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   parsed,
	})
	return s.Detail(ctx, orderID)
}

func (s *orderService) findOrder(orders repository.OrderRepository, orderID uint) (*model.Order, error) {
	order, err := orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, persistenceError("find order", err)
	}
	return order, nil
}

func toOrderSummary(order *model.Order) OrderSummary {
	summary := OrderSummary{
		OrderID:     order.ID,
		CartID:      order.CartID,
		UserID:      order.UserID,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
		Items:       toOrderLines(order.Items),
	}
	if p := order.Payment; p != nil {
		summary.PaymentMethod = p.Method
		summary.PaymentStatus = p.Status
	}
	if d := order.Delivery; d != nil {
		summary.DeliveryMethod = d.Method
		summary.DeliveryStatus = d.Status
		summary.Address = d.Address
		if d.EstimatedDate != nil {
			date := d.EstimatedDate.Format("2006-01-02")
			summary.EstimatedDeliveryDate = &date
		}
	}
	return summary
}

func toOrderLines(items []model.OrderItem) []OrderLine {
	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		line := OrderLine{
			OrderItemID: item.ID,
			OrderID:     item.OrderID,
			VariantID:   item.VariantID,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
		if v := item.Variant; v != nil {
			line.VariantName = v.Name
			line.ProductName = v.ProductName()
			line.ProductID = v.ProductID
		}
		lines = append(lines, line)
	}
	return lines
}
