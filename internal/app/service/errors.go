package service

import (
	"errors"
	"fmt"
)

var (
	ErrCartNotFound            = errors.New("cart not found")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrCartItemNotFound        = errors.New("cart item not found")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrVariantNotFound         = errors.New("variant not found")
	ErrVariantUnpriced         = errors.New("variant has no price and cannot be purchased")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrNegativeStock           = errors.New("stock quantity cannot be negative")
	ErrCityNotFound            = errors.New("city not found")
	ErrAddressRequired         = errors.New("address is required for home delivery")
	ErrAddressNotFound         = errors.New("address not found")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidDeliveryMethod   = errors.New("invalid delivery method")
	ErrInvalidCard             = errors.New("invalid card details")
	ErrOrderNotFound           = errors.New("order not found")
	ErrPaymentAlreadyCompleted = errors.New("payment is not pending")
	ErrInvalidDeliveryStatus   = errors.New("invalid delivery status")
	ErrPersistence             = errors.New("persistence failure")
)

// InsufficientStockError reports the first line that cannot be fulfilled.
// It matches ErrInsufficientStock with errors.Is.
type InsufficientStockError struct {
	VariantID   uint
	VariantName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", e.VariantName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// CityNotFoundError names the city that failed to resolve; it matches ErrCityNotFound.
type CityNotFoundError struct {
	City string
}

func (e *CityNotFoundError) Error() string {
	return fmt.Sprintf("City '%s' not found in location database", e.City)
}

func (e *CityNotFoundError) Is(target error) bool {
	return target == ErrCityNotFound
}

// persistenceError wraps a storage failure so callers can match ErrPersistence
// without seeing driver details.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
