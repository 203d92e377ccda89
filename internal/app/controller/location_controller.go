package controller

import (
	"net/http"

	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type LocationController struct {
	locationService service.LocationService
}

func NewLocationController(locationService service.LocationService) *LocationController {
	return &LocationController{
		locationService: locationService,
	}
}

// ListCities
// GET /api/v1/locations/cities
func (ctrl *LocationController) ListCities(c *gin.Context) {
	cities, err := ctrl.locationService.ListCities(c.Request.Context())
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cities": cities,
		"count":  len(cities),
	})
}

// GetCity resolves a city name case-insensitively
// GET /api/v1/locations/cities/:name
func (ctrl *LocationController) GetCity(c *gin.Context) {
	location, err := ctrl.locationService.ResolveCity(c.Request.Context(), c.Param("name"))
	if err != nil {
		errors.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}
