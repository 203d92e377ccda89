package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Brand       string         `gorm:"size:100" json:"brand,omitempty"`
	Category    string         `gorm:"size:100;index" json:"category,omitempty"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// Variant is the purchasable unit: it carries the price and the stock counter.
type Variant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	SKU       string    `gorm:"size:64;uniqueIndex" json:"sku"`
	Price     *Money    `gorm:"type:decimal(10,2)" json:"price"`                        // nil = not for sale
	Quantity  int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"` // stock on hand
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Variant) TableName() string {
	return "variants"
}

// ProductName is safe to call when Product was not preloaded.
func (v *Variant) ProductName() string {
	if v == nil || v.Product == nil {
		return ""
	}
	return v.Product.Name
}
