package repository

import (
	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	EnsureForUser(userID uint) error
	FindByUserIDForUpdate(userID uint) (*model.Cart, error)
	FindByIDForUpdate(id uint) (*model.Cart, error)
	FindByUserIDWithItems(userID uint) (*model.Cart, error)
	FindByIDWithItems(id uint) (*model.Cart, error)
	UpdateTotal(cartID uint, total model.Money) error
	CreateItem(item *model.CartItem) error
	FindItemByID(id uint) (*model.CartItem, error)
	FindItem(cartID, variantID uint) (*model.CartItem, error)
	UpdateItemQuantity(id uint, quantity int) error
	DeleteItem(id uint) error
	DeleteItemsByCartID(cartID uint) error
	DeleteItems(cartID uint, ids []uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &cartRepository{db: tx}
}

func (r *cartRepository) preloadItems() *gorm.DB {
	return r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).Preload("Items.Variant.Product")
}

// EnsureForUser inserts an empty cart for the user unless one already exists.
// A concurrent insert for the same user is absorbed by the user_id unique index.
func (r *cartRepository) EnsureForUser(userID uint) error {
	cart := model.Cart{UserID: userID}
	err := r.db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&cart).Error
	if err != nil {
		logger.Error("Failed to ensure cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// FindByUserIDForUpdate reads the cart row with SELECT ... FOR UPDATE so that
// cart mutations and checkout serialize on it. Only meaningful on a transaction handle.
func (r *cartRepository) FindByUserIDForUpdate(userID uint) (*model.Cart, error) {
	logger.Debug("Locking cart row", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindByIDForUpdate(id uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cart, id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindByUserIDWithItems(userID uint) (*model.Cart, error) {
	logger.Debug("Finding cart with items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	if err := r.preloadItems().Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}

	logger.Debug("Cart found by user ID in database", map[string]interface{}{
		"cart_id":    cart.ID,
		"user_id":    userID,
		"item_count": len(cart.Items),
	})
	return &cart, nil
}

func (r *cartRepository) FindByIDWithItems(id uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.preloadItems().First(&cart, id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) UpdateTotal(cartID uint, total model.Money) error {
	err := r.db.Model(&model.Cart{}).Where("id = ?", cartID).Update("total_amount", total).Error
	if err != nil {
		logger.Error("Failed to update cart total in database", err, map[string]interface{}{
			"cart_id": cartID,
			"total":   total.String(),
		})
		return err
	}

	logger.Debug("Cart total updated in database", map[string]interface{}{
		"cart_id": cartID,
		"total":   total.String(),
	})
	return nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"variant_id": item.VariantID,
			"quantity":   item.Quantity,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
		"variant_id":   item.VariantID,
	})
	return nil
}

func (r *cartRepository) FindItemByID(id uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.Preload("Variant.Product").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindItem(cartID, variantID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("cart_id = ? AND variant_id = ?", cartID, variantID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItemQuantity(id uint, quantity int) error {
	err := r.db.Model(&model.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
	if err != nil {
		logger.Error("Failed to update cart item quantity in database", err, map[string]interface{}{
			"cart_item_id": id,
			"quantity":     quantity,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteItem(id uint) error {
	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_item_id": id,
	})
	return nil
}

func (r *cartRepository) DeleteItemsByCartID(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by cart ID from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Debug("Cart items deleted by cart ID from database", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

// DeleteItems removes only the listed lines of the cart.
func (r *cartRepository) DeleteItems(cartID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Where("cart_id = ? AND id IN ?", cartID, ids).Delete(&model.CartItem{}).Error
	if err != nil {
		logger.Error("Failed to delete cart items from database", err, map[string]interface{}{
			"cart_id":    cartID,
			"item_count": len(ids),
		})
		return err
	}

	logger.Debug("Cart items deleted from database", map[string]interface{}{
		"cart_id":    cartID,
		"item_count": len(ids),
	})
	return nil
}
