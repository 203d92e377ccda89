package db

import (
	"testing"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLocations_Idempotent(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, SeedLocations(testDB))
	require.NoError(t, SeedLocations(testDB))

	var count int64
	require.NoError(t, testDB.Model(&model.Location{}).Count(&count).Error)
	assert.Equal(t, int64(len(DefaultLocations)), count)

	var austin model.Location
	require.NoError(t, testDB.Where("city = ?", "Austin").First(&austin).Error)
	assert.True(t, austin.IsMainCity)
}

func TestVariantQuantityCheckConstraint(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	product := &model.Product{Name: "Phone"}
	require.NoError(t, testDB.Create(product).Error)
	variant := &model.Variant{ProductID: product.ID, Name: "64GB", SKU: "PH-64", Quantity: 1}
	require.NoError(t, testDB.Create(variant).Error)

	err = testDB.Model(variant).Update("quantity", -1).Error
	assert.Error(t, err)
}

func TestTruncateAllTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, SeedLocations(testDB))
	require.NoError(t, TruncateAllTables(testDB))

	var count int64
	testDB.Model(&model.Location{}).Count(&count)
	assert.Zero(t, count)
}
