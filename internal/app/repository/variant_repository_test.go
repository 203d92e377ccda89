package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVariantRepository_DecrementStock(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewVariantRepository(testDB)
	variant := createVariant(t, testDB, "SKU-1", "10.00", 5)

	rows, err := repo.DecrementStock(variant.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.DecrementStock(variant.ID, 3)
	require.NoError(t, err)
	assert.Zero(t, rows, "guard must refuse to go below zero")

	reloaded, err := repo.FindByID(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Quantity)
	assert.Equal(t, "Product SKU-1", reloaded.ProductName())
}

func TestVariantRepository_FindByIDForUpdateInTx(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewVariantRepository(testDB)
	variant := createVariant(t, testDB, "SKU-1", "10.00", 5)

	err := testDB.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.WithTx(tx).FindByIDForUpdate(variant.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, locked.Quantity)
		return nil
	})
	require.NoError(t, err)

	_, err = repo.FindByIDForUpdate(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVariantRepository_FindLowStock(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewVariantRepository(testDB)
	createVariant(t, testDB, "LOW", "1.00", 2)
	createVariant(t, testDB, "HIGH", "1.00", 50)
	createVariant(t, testDB, "ZERO", "1.00", 0)

	variants, err := repo.FindLowStock(10)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "ZERO", variants[0].SKU)
	assert.Equal(t, "LOW", variants[1].SKU)
}

func TestVariantRepository_SetQuantity(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewVariantRepository(testDB)
	variant := createVariant(t, testDB, "SKU-1", "", 1)

	require.NoError(t, repo.SetQuantity(variant.ID, 40))
	reloaded, err := repo.FindBySKU("SKU-1")
	require.NoError(t, err)
	assert.Equal(t, 40, reloaded.Quantity)
	assert.Nil(t, reloaded.Price)

	assert.ErrorIs(t, repo.SetQuantity(9999, 1), gorm.ErrRecordNotFound)
}
