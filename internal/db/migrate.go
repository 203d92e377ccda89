package db

import (
	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Location{},
		&model.Address{},
		&model.Product{},
		&model.Variant{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.CardDetail{},
		&model.Delivery{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB migrates the given handle and seeds reference data.
func MigrateDB(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedLocations(db); err != nil {
		logger.Error("Failed to seed locations during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// DefaultLocations is the serviceable city list seeded on first migration.
var DefaultLocations = []model.Location{
	{City: "Austin", ZipCode: "73301", IsMainCity: true},
	{City: "Dallas", ZipCode: "75201", IsMainCity: true},
	{City: "Houston", ZipCode: "77001", IsMainCity: true},
	{City: "San Antonio", ZipCode: "78201", IsMainCity: true},
	{City: "El Paso", ZipCode: "79901"},
	{City: "Lubbock", ZipCode: "79401"},
	{City: "Waco", ZipCode: "76701"},
	{City: "Amarillo", ZipCode: "79101"},
}

// SeedLocations inserts DefaultLocations when the table is empty.
func SeedLocations(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Location{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Locations already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	locations := make([]model.Location, len(DefaultLocations))
	copy(locations, DefaultLocations)
	if err := db.Create(&locations).Error; err != nil {
		return err
	}

	logger.Info("Locations seeded", map[string]interface{}{
		"count": len(locations),
	})
	return nil
}
