package service

import (
	"context"
	"errors"
	"strings"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"github.com/brightbuy/brightbuy-backend/pkg/redis"
	"gorm.io/gorm"
)

const citiesCacheKey = "cities"

type LocationService interface {
	ResolveCity(ctx context.Context, name string) (*model.Location, error)
	// ResolveCityTx looks the city up on tx, bypassing the cache so the read
	// belongs to the caller's transaction.
	ResolveCityTx(tx *gorm.DB, name string) (*model.Location, error)
	ListCities(ctx context.Context) ([]model.Location, error)
}

type locationService struct {
	db           *gorm.DB
	locationRepo repository.LocationRepository
	cache        *redis.Cache
}

// NewLocationService accepts a nil cache, in which case every lookup hits the database.
func NewLocationService(db *gorm.DB, locationRepo repository.LocationRepository, cache *redis.Cache) LocationService {
	return &locationService{
		db:           db,
		locationRepo: locationRepo,
		cache:        cache,
	}
}

func (s *locationService) ResolveCity(ctx context.Context, name string) (*model.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &CityNotFoundError{City: name}
	}

	key := "city:" + strings.ToLower(name)
	var cached model.Location
	if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
		return &cached, nil
	}

	location, err := s.ResolveCityTx(s.db.WithContext(ctx), name)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, location); err != nil {
		logger.Warn("Failed to cache location", map[string]interface{}{
			"city":  name,
			"error": err.Error(),
		})
	}
	return location, nil
}

func (s *locationService) ResolveCityTx(tx *gorm.DB, name string) (*model.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &CityNotFoundError{City: name}
	}

	location, err := s.locationRepo.WithTx(tx).FindByCity(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("City not found", map[string]interface{}{
				"city": name,
			})
			return nil, &CityNotFoundError{City: name}
		}
		return nil, persistenceError("find city", err)
	}
	return location, nil
}

func (s *locationService) ListCities(ctx context.Context) ([]model.Location, error) {
	var cached []model.Location
	if hit, _ := s.cache.GetJSON(ctx, citiesCacheKey, &cached); hit {
		return cached, nil
	}

	locations, err := s.locationRepo.WithTx(s.db.WithContext(ctx)).FindAll()
	if err != nil {
		return nil, persistenceError("list cities", err)
	}

	_ = s.cache.SetJSON(ctx, citiesCacheKey, locations)
	return locations, nil
}

// cityInfo converts a resolved location into estimator input.
func cityInfo(location *model.Location) *CityInfo {
	if location == nil {
		return nil
	}
	return &CityInfo{
		Name:       location.City,
		IsMainCity: location.IsMainCity,
		Recognized: true,
	}
}
