package repository

import (
	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"gorm.io/gorm"
)

type LocationRepository interface {
	WithTx(tx *gorm.DB) LocationRepository
	FindAll() ([]model.Location, error)
	FindByCity(city string) (*model.Location, error)
	CreateAddress(address *model.Address) error
	FindAddressByID(id uint) (*model.Address, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) WithTx(tx *gorm.DB) LocationRepository {
	if tx == nil {
		return r
	}
	return &locationRepository{db: tx}
}

func (r *locationRepository) FindAll() ([]model.Location, error) {
	var locations []model.Location
	if err := r.db.Order("city ASC").Find(&locations).Error; err != nil {
		logger.Error("Failed to list locations in database", err)
		return nil, err
	}
	return locations, nil
}

// FindByCity matches the city name case-insensitively.
func (r *locationRepository) FindByCity(city string) (*model.Location, error) {
	var location model.Location
	if err := r.db.Where("LOWER(city) = LOWER(?)", city).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) CreateAddress(address *model.Address) error {
	logger.Debug("Creating address in database", map[string]interface{}{
		"city":        address.City,
		"location_id": address.LocationID,
	})

	if err := r.db.Omit("Location").Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"city": address.City,
		})
		return err
	}
	return nil
}

func (r *locationRepository) FindAddressByID(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.Preload("Location").First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}
