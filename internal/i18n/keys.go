// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError  = "error.internal"
	KeyRateLimited    = "error.rate_limited"
	KeyInvalidID      = "error.invalid_id"
	KeyInvalidDate    = "error.invalid_date"
	KeyInvalidDecimal = "error.invalid_decimal"
	KeyDuplicate      = "error.duplicate"

	// Users
	KeyUserNotFound      = "user.not_found"
	KeyUserEmailTaken    = "user.email_taken"
	KeyUserUserNameTaken = "user.username_taken"
	KeyUserPasswordHash  = "user.password_unusable"

	// Products
	KeyProductNotFound          = "product.not_found"
	KeyProductNameTaken         = "product.name_taken"
	KeyProductPriceScale        = "product.price_scale"
	KeyProductNegativePrice     = "product.negative_price"
	KeyProductNegativeStock     = "product.negative_stock"
	KeyProductSaleNotBelowPrice = "product.sale_not_below_price"
	KeyProductNegativeSalePrice = "product.negative_sale_price"
	KeyProductInUse             = "product.in_use"
	KeyProductInvalidCategory   = "product.invalid_category"

	// Orders
	KeyOrderNotFound          = "order.not_found"
	KeyOrderNoItems           = "order.no_items"
	KeyOrderInvalidQuantity   = "order.invalid_quantity"
	KeyOrderItemNotFound      = "order.item_not_found"
	KeyOrderInvalidStatus     = "order.invalid_status"
	KeyOrderTransitionBlocked = "order.transition_blocked"
	KeyOrderNotCancellable    = "order.not_cancellable"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// File Upload
	KeyFileMissing     = "file.missing"
	KeyFileInvalidType = "file.invalid_type"
	KeyFileTooLarge    = "file.too_large"
)
