package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientStockError(t *testing.T) {
	var err error = &InsufficientStockError{VariantID: 3, VariantName: "Blue / M", Available: 1, Requested: 2}
	wrapped := fmt.Errorf("checkout: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInsufficientStock))
	assert.False(t, errors.Is(wrapped, ErrEmptyCart))

	var stockErr *InsufficientStockError
	assert.True(t, errors.As(wrapped, &stockErr))
	assert.Equal(t, uint(3), stockErr.VariantID)
	assert.Equal(t, "Insufficient stock for Blue / M. Available: 1, Requested: 2", err.Error())
}

func TestCityNotFoundError(t *testing.T) {
	err := &CityNotFoundError{City: "Atlantis"}
	assert.ErrorIs(t, err, ErrCityNotFound)
	assert.Equal(t, "City 'Atlantis' not found in location database", err.Error())
}

func TestPersistenceError(t *testing.T) {
	err := persistenceError("create order", errors.New("disk full"))
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "create order")
}
