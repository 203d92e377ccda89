package repository

import (
	"testing"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func createVariant(t *testing.T, testDB *gorm.DB, sku, price string, quantity int) *model.Variant {
	product := &model.Product{Name: "Product " + sku}
	require.NoError(t, testDB.Create(product).Error)

	variant := &model.Variant{ProductID: product.ID, Name: "Variant " + sku, SKU: sku, Quantity: quantity}
	if price != "" {
		p := model.MustMoney(price)
		variant.Price = &p
	}
	require.NoError(t, testDB.Create(variant).Error)
	return variant
}
