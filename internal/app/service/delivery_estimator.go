package service

import (
	"time"

	"github.com/brightbuy/brightbuy-backend/internal/app/model"
)

// Delivery business constants. Both the cart preview and checkout go through
// DeliveryEstimator, so these are the only copies.
const (
	DefaultPickupDays            = 2
	DefaultMainCityDays          = 5
	DefaultOtherCityDays         = 7
	DefaultLowStockThreshold     = 10
	DefaultLowStockSurchargeDays = 3
)

type DeliveryRules struct {
	PickupDays            int
	MainCityDays          int
	OtherCityDays         int
	LowStockThreshold     int
	LowStockSurchargeDays int
}

func DefaultDeliveryRules() DeliveryRules {
	return DeliveryRules{
		PickupDays:            DefaultPickupDays,
		MainCityDays:          DefaultMainCityDays,
		OtherCityDays:         DefaultOtherCityDays,
		LowStockThreshold:     DefaultLowStockThreshold,
		LowStockSurchargeDays: DefaultLowStockSurchargeDays,
	}
}

// withDefaults fills unset (non-positive) fields; a zero surcharge is allowed.
func (r DeliveryRules) withDefaults() DeliveryRules {
	d := DefaultDeliveryRules()
	if r.PickupDays <= 0 {
		r.PickupDays = d.PickupDays
	}
	if r.MainCityDays <= 0 {
		r.MainCityDays = d.MainCityDays
	}
	if r.OtherCityDays <= 0 {
		r.OtherCityDays = d.OtherCityDays
	}
	if r.LowStockThreshold <= 0 {
		r.LowStockThreshold = d.LowStockThreshold
	}
	if r.LowStockSurchargeDays < 0 {
		r.LowStockSurchargeDays = d.LowStockSurchargeDays
	}
	return r
}

// StockLine is one cart line as seen by the estimator: stock is read before any decrement.
type StockLine struct {
	VariantID uint
	Stock     int
	Quantity  int
}

// CityInfo describes the destination. Recognized is false for a city name
// that is not in the location table; such cities get the non-main base.
type CityInfo struct {
	Name       string
	IsMainCity bool
	Recognized bool
}

// DeliveryEstimate is either a point estimate (Days/EstimatedDate set) or,
// for home delivery with no destination yet, a range (IsRange).
type DeliveryEstimate struct {
	Method        model.DeliveryMethod `json:"delivery_method"`
	Days          *int                 `json:"estimated_days,omitempty"`
	EstimatedDate *time.Time           `json:"-"`
	MainCityDays  int                  `json:"main_city_days,omitempty"`
	OtherCityDays int                  `json:"other_city_days,omitempty"`
	HasLowStock   bool                 `json:"has_low_stock"`
	IsRange       bool                 `json:"is_range"`
}

// DateString renders EstimatedDate as YYYY-MM-DD, or "" for a range.
func (e DeliveryEstimate) DateString() string {
	if e.EstimatedDate == nil {
		return ""
	}
	return e.EstimatedDate.Format("2006-01-02")
}

type DeliveryEstimator struct {
	rules DeliveryRules
}

func NewDeliveryEstimator(rules DeliveryRules) *DeliveryEstimator {
	return &DeliveryEstimator{rules: rules.withDefaults()}
}

func (e *DeliveryEstimator) Rules() DeliveryRules {
	return e.rules
}

// Estimate applies, in order: pickup is fixed; home delivery adds the
// low-stock surcharge to the main or other city base, or returns both as a
// range when city is nil. today is truncated to a calendar date.
func (e *DeliveryEstimator) Estimate(method model.DeliveryMethod, items []StockLine, city *CityInfo, today time.Time) DeliveryEstimate {
	r := e.rules
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	if method == model.DeliveryMethodStorePickup {
		return pointEstimate(method, r.PickupDays, false, day)
	}

	hasLowStock := false
	for _, item := range items {
		if item.Stock < r.LowStockThreshold {
			hasLowStock = true
			break
		}
	}
	surcharge := 0
	if hasLowStock {
		surcharge = r.LowStockSurchargeDays
	}

	if city == nil {
		return DeliveryEstimate{
			Method:        method,
			MainCityDays:  r.MainCityDays + surcharge,
			OtherCityDays: r.OtherCityDays + surcharge,
			HasLowStock:   hasLowStock,
			IsRange:       true,
		}
	}

	base := r.OtherCityDays
	if city.Recognized && city.IsMainCity {
		base = r.MainCityDays
	}
	return pointEstimate(method, base+surcharge, hasLowStock, day)
}

func pointEstimate(method model.DeliveryMethod, days int, hasLowStock bool, day time.Time) DeliveryEstimate {
	date := day.AddDate(0, 0, days)
	return DeliveryEstimate{
		Method:        method,
		Days:          &days,
		EstimatedDate: &date,
		HasLowStock:   hasLowStock,
	}
}
