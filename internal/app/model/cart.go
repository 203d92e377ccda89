package model

import (
	"time"
)

// Cart is the 1:1 shopping cart of a user. TotalAmount is derived from the
// lines at live variant prices and recomputed on every mutation.
type Cart struct {
	ID          uint      `gorm:"primarykey" json:"cart_id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalAmount Money     `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"cart_item_id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_variant" json:"cart_id"`
	VariantID uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_variant;index" json:"variant_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Variant *Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal is quantity x live price; unpriced variants contribute nothing.
func (ci *CartItem) LineTotal() Money {
	if ci.Variant == nil || ci.Variant.Price == nil {
		return Money{}
	}
	return ci.Variant.Price.Times(ci.Quantity)
}
