package repository

import (
	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VariantRepository interface {
	WithTx(tx *gorm.DB) VariantRepository
	Create(variant *model.Variant) error
	FindByID(id uint) (*model.Variant, error)
	FindBySKU(sku string) (*model.Variant, error)
	FindByIDForUpdate(id uint) (*model.Variant, error)
	DecrementStock(id uint, quantity int) (int64, error)
	SetQuantity(id uint, quantity int) error
	Update(variant *model.Variant) error
	FindLowStock(threshold int) ([]model.Variant, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) WithTx(tx *gorm.DB) VariantRepository {
	if tx == nil {
		return r
	}
	return &variantRepository{db: tx}
}

func (r *variantRepository) Create(variant *model.Variant) error {
	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create variant in database", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"sku":        variant.SKU,
		})
		return err
	}

	logger.Debug("Variant created in database", map[string]interface{}{
		"variant_id": variant.ID,
		"product_id": variant.ProductID,
		"sku":        variant.SKU,
	})
	return nil
}

func (r *variantRepository) FindByID(id uint) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.Preload("Product").First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindBySKU(sku string) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.Where("sku = ?", sku).First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindByIDForUpdate reads the variant with a row lock (SELECT ... FOR UPDATE).
// Only meaningful on a transaction handle.
func (r *variantRepository) FindByIDForUpdate(id uint) (*model.Variant, error) {
	logger.Debug("Locking variant row", map[string]interface{}{
		"variant_id": id,
	})

	var variant model.Variant
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Product").
		First(&variant, id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// DecrementStock subtracts quantity only while enough stock remains and
// returns the affected row count; zero means the guard failed.
func (r *variantRepository) DecrementStock(id uint, quantity int) (int64, error) {
	result := r.db.Model(&model.Variant{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		logger.Error("Failed to decrement variant stock", result.Error, map[string]interface{}{
			"variant_id": id,
			"quantity":   quantity,
		})
		return 0, result.Error
	}

	logger.Debug("Variant stock decremented", map[string]interface{}{
		"variant_id":    id,
		"quantity":      quantity,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *variantRepository) SetQuantity(id uint, quantity int) error {
	result := r.db.Model(&model.Variant{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		logger.Error("Failed to set variant quantity", result.Error, map[string]interface{}{
			"variant_id": id,
			"quantity":   quantity,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *variantRepository) Update(variant *model.Variant) error {
	if err := r.db.Save(variant).Error; err != nil {
		logger.Error("Failed to update variant in database", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	return nil
}

func (r *variantRepository) FindLowStock(threshold int) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.Preload("Product").
		Where("quantity < ?", threshold).
		Order("quantity ASC, id ASC").
		Find(&variants).Error
	if err != nil {
		logger.Error("Failed to find low stock variants", err, map[string]interface{}{
			"threshold": threshold,
		})
		return nil, err
	}
	return variants, nil
}
