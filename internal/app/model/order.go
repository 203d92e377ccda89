package model

import (
	"strings"
	"time"
)

type PaymentMethod string
type PaymentStatus string
type DeliveryMethod string
type DeliveryStatus string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCOD  PaymentMethod = "cod"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"

	DeliveryMethodStorePickup  DeliveryMethod = "store_pickup"
	DeliveryMethodHomeDelivery DeliveryMethod = "home_delivery"

	DeliveryStatusPending        DeliveryStatus = "pending"
	DeliveryStatusProcessing     DeliveryStatus = "processing"
	DeliveryStatusShipped        DeliveryStatus = "shipped"
	DeliveryStatusOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryStatusDelivered      DeliveryStatus = "delivered"
	DeliveryStatusCancelled      DeliveryStatus = "cancelled"
)

var deliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusProcessing,
	DeliveryStatusShipped,
	DeliveryStatusOutForDelivery,
	DeliveryStatusDelivered,
	DeliveryStatusCancelled,
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCOD
}

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryMethodStorePickup || m == DeliveryMethodHomeDelivery
}

// ParseDeliveryStatus accepts the stored value ("out_for_delivery") or the
// display label ("Out for Delivery"), case-insensitively.
func ParseDeliveryStatus(s string) (DeliveryStatus, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for _, status := range deliveryStatuses {
		if string(status) == normalized {
			return status, true
		}
	}
	return "", false
}

// Order is an immutable snapshot of a cart at checkout time.
type Order struct {
	ID          uint      `gorm:"primarykey" json:"order_id"`
	CartID      uint      `gorm:"not null;index" json:"cart_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	OrderDate   time.Time `gorm:"not null;index" json:"order_date"`
	TotalAmount Money     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`

	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	Payment  *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
	Delivery *Delivery   `gorm:"foreignKey:OrderID" json:"delivery,omitempty"`
	User     *User       `gorm:"foreignKey:UserID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint  `gorm:"primarykey" json:"order_item_id"`
	OrderID   uint  `gorm:"not null;index" json:"order_id"`
	VariantID uint  `gorm:"not null;index" json:"variant_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	Price     Money `gorm:"type:decimal(10,2);not null" json:"price"` // unit price frozen at checkout

	Variant *Variant `gorm:"foreignKey:VariantID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type Payment struct {
	ID          uint          `gorm:"primarykey" json:"payment_id"`
	OrderID     uint          `gorm:"uniqueIndex;not null" json:"order_id"`
	Method      PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status      PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentDate time.Time     `json:"payment_date"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Card *CardDetail `gorm:"foreignKey:PaymentID" json:"card,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// CardDetail never stores the CVV or the clear card number.
type CardDetail struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	PaymentID  uint      `gorm:"uniqueIndex;not null" json:"-"`
	CardName   string    `gorm:"size:100;not null" json:"card_name"`
	Last4      string    `gorm:"size:4;not null" json:"last4"`
	Expiry     string    `gorm:"size:5;not null" json:"expiry"`
	NumberHash string    `gorm:"not null" json:"-"`
	CreatedAt  time.Time `json:"-"`
}

func (CardDetail) TableName() string {
	return "card_details"
}

type Delivery struct {
	ID            uint           `gorm:"primarykey" json:"delivery_id"`
	OrderID       uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	Method        DeliveryMethod `gorm:"type:varchar(20);not null" json:"delivery_method"`
	AddressID     *uint          `gorm:"index" json:"address_id,omitempty"`
	EstimatedDate *time.Time     `json:"estimated_delivery_date,omitempty"`
	Status        DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"delivery_status"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Address *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

func (Delivery) TableName() string {
	return "deliveries"
}
