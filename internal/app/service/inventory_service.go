package service

import (
	"errors"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"gorm.io/gorm"
)

var errTxRequired = errors.New("stock decrement requires a transaction handle")

// InventoryService owns the per-variant stock counter.
type InventoryService interface {
	// Reserve locks the variant row for the rest of tx and checks that qty units are available.
	Reserve(tx *gorm.DB, variantID uint, qty int) (*model.Variant, error)
	// Decrement subtracts qty atomically; it fails instead of driving stock negative.
	Decrement(tx *gorm.DB, variantID uint, qty int) error
	AdjustStock(variantID uint, quantity int) (*model.Variant, error)
	ListLowStock(threshold int) ([]model.Variant, error)
}

type inventoryService struct {
	variantRepo repository.VariantRepository
}

func NewInventoryService(variantRepo repository.VariantRepository) InventoryService {
	return &inventoryService{variantRepo: variantRepo}
}

func (s *inventoryService) Reserve(tx *gorm.DB, variantID uint, qty int) (*model.Variant, error) {
	variant, err := s.variantRepo.WithTx(tx).FindByIDForUpdate(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, persistenceError("lock variant", err)
	}

	if variant.Quantity < qty {
		logger.Warn("Insufficient stock", map[string]interface{}{
			"variant_id": variantID,
			"available":  variant.Quantity,
			"requested":  qty,
		})
		return variant, &InsufficientStockError{
			VariantID:   variant.ID,
			VariantName: variant.Name,
			Available:   variant.Quantity,
			Requested:   qty,
		}
	}
	return variant, nil
}

func (s *inventoryService) Decrement(tx *gorm.DB, variantID uint, qty int) error {
	if tx == nil {
		return errTxRequired
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}

	repo := s.variantRepo.WithTx(tx)
	rows, err := repo.DecrementStock(variantID, qty)
	if err != nil {
		return persistenceError("decrement stock", err)
	}
	if rows == 1 {
		return nil
	}

	variant, err := repo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return persistenceError("reload variant", err)
	}
	return &InsufficientStockError{
		VariantID:   variant.ID,
		VariantName: variant.Name,
		Available:   variant.Quantity,
		Requested:   qty,
	}
}

func (s *inventoryService) AdjustStock(variantID uint, quantity int) (*model.Variant, error) {
	if quantity < 0 {
		return nil, ErrNegativeStock
	}

	if err := s.variantRepo.SetQuantity(variantID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, persistenceError("set stock", err)
	}

	logger.Info("Variant stock adjusted", map[string]interface{}{
		"variant_id": variantID,
		"quantity":   quantity,
	})

	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		return nil, persistenceError("reload variant", err)
	}
	return variant, nil
}

func (s *inventoryService) ListLowStock(threshold int) ([]model.Variant, error) {
	if threshold <= 0 {
		threshold = DefaultDeliveryRules().LowStockThreshold
	}
	variants, err := s.variantRepo.FindLowStock(threshold)
	if err != nil {
		return nil, persistenceError("list low stock", err)
	}
	return variants, nil
}
