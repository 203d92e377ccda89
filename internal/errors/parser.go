package errors

import (
	"errors"
	"net/http"

	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/pkg/util"
	"gorm.io/gorm"
)

// ErrorInfo is the status, code and client-facing message for an error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError maps service errors to an HTTP response. Anything unrecognised,
// including persistence failures, becomes a 500 with a generic message so
// driver details never reach the client.
func ParseError(err error) ErrorInfo {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		return ErrorInfo{http.StatusConflict, StockInsufficient, stockErr.Error()}
	}
	var cityErr *service.CityNotFoundError
	if errors.As(err, &cityErr) {
		return ErrorInfo{http.StatusBadRequest, LocationCityNotFound, cityErr.Error()}
	}

	switch {
	case errors.Is(err, service.ErrCartNotFound):
		return ErrorInfo{http.StatusNotFound, CartNotFound, "Cart not found"}
	case errors.Is(err, service.ErrEmptyCart):
		return ErrorInfo{http.StatusBadRequest, CartEmpty, "Cart is empty"}
	case errors.Is(err, service.ErrCartItemNotFound):
		return ErrorInfo{http.StatusNotFound, CartItemNotFound, "Cart item not found"}
	case errors.Is(err, service.ErrVariantNotFound):
		return ErrorInfo{http.StatusNotFound, VariantNotFound, "Variant not found"}
	case errors.Is(err, service.ErrVariantUnpriced):
		return ErrorInfo{http.StatusBadRequest, VariantUnpriced, "Variant price not available"}
	case errors.Is(err, service.ErrInsufficientStock):
		return ErrorInfo{http.StatusConflict, StockInsufficient, "Insufficient stock"}
	case errors.Is(err, service.ErrCityNotFound):
		return ErrorInfo{http.StatusBadRequest, LocationCityNotFound, "City not found in location database"}
	case errors.Is(err, service.ErrAddressRequired):
		return ErrorInfo{http.StatusBadRequest, CheckoutAddressRequired, "Delivery address is required for home delivery"}
	case errors.Is(err, service.ErrAddressNotFound):
		return ErrorInfo{http.StatusNotFound, AddressNotFound, "Address not found"}
	case errors.Is(err, service.ErrOrderNotFound):
		return ErrorInfo{http.StatusNotFound, OrderNotFound, "Order not found"}
	case errors.Is(err, service.ErrPaymentAlreadyCompleted):
		return ErrorInfo{http.StatusConflict, PaymentNotPending, "Payment is not pending"}
	case errors.Is(err, service.ErrInvalidQuantity):
		return ErrorInfo{http.StatusBadRequest, ValidationInvalidQuantity, "Quantity must be at least 1"}
	case errors.Is(err, service.ErrNegativeStock):
		return ErrorInfo{http.StatusBadRequest, ValidationNegativeStock, "Stock quantity cannot be negative"}
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		return ErrorInfo{http.StatusBadRequest, ValidationInvalidPaymentMethod, "Payment method must be card or cod"}
	case errors.Is(err, service.ErrInvalidDeliveryMethod):
		return ErrorInfo{http.StatusBadRequest, ValidationInvalidDeliveryMethod, "Delivery method must be store_pickup or home_delivery"}
	case errors.Is(err, service.ErrInvalidDeliveryStatus):
		return ErrorInfo{http.StatusBadRequest, ValidationInvalidDeliveryStatus, "Invalid delivery status"}
	case errors.Is(err, service.ErrInvalidCard):
		return ErrorInfo{http.StatusBadRequest, ValidationInvalidCard, cardMessage(err)}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorInfo{http.StatusNotFound, ResourceNotFound, "Resource not found"}
	case errors.Is(err, service.ErrPersistence):
		return ErrorInfo{http.StatusInternalServerError, InternalDatabaseError, "A database error occurred. Please try again later"}
	}

	return ErrorInfo{http.StatusInternalServerError, InternalServerError, "An internal error occurred. Please try again later"}
}

// cardMessage surfaces which card field failed without echoing the input.
func cardMessage(err error) string {
	for _, cause := range []error{util.ErrInvalidCardNumber, util.ErrInvalidCVV, util.ErrInvalidExpiry} {
		if errors.Is(err, cause) {
			return cause.Error()
		}
	}
	return "Invalid card details"
}
