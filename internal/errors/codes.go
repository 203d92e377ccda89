package errors

// Error codes returned in the "error" field of every failure response.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map codes to messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED"
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput          = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID             = "VALIDATION_INVALID_ID"
	ValidationInvalidQuantity       = "VALIDATION_INVALID_QUANTITY"
	ValidationInvalidPaymentMethod  = "VALIDATION_INVALID_PAYMENT_METHOD"
	ValidationInvalidDeliveryMethod = "VALIDATION_INVALID_DELIVERY_METHOD"
	ValidationInvalidDeliveryStatus = "VALIDATION_INVALID_DELIVERY_STATUS"
	ValidationInvalidCard           = "VALIDATION_INVALID_CARD"
	ValidationNegativeStock         = "VALIDATION_NEGATIVE_STOCK"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND"
	ResourceConflict = "RESOURCE_CONFLICT"

	// ==================== Cart (CART_) ====================
	CartNotFound     = "CART_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"
	CartItemNotFound = "CART_ITEM_NOT_FOUND"

	// ==================== Catalog / stock ====================
	VariantNotFound   = "VARIANT_NOT_FOUND"
	VariantUnpriced   = "VARIANT_UNPRICED"
	StockInsufficient = "STOCK_INSUFFICIENT"

	// ==================== Checkout / orders ====================
	LocationCityNotFound    = "LOCATION_CITY_NOT_FOUND"
	CheckoutAddressRequired = "CHECKOUT_ADDRESS_REQUIRED"
	AddressNotFound         = "ADDRESS_NOT_FOUND"
	OrderNotFound           = "ORDER_NOT_FOUND"
	PaymentNotPending       = "PAYMENT_NOT_PENDING"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
