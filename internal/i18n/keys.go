// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthNotAdmin           = "auth.not_admin"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Products
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Categories
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"

	// Orders
	KeyOrderNotFound         = "order.not_found"
	KeyOrderInvalidStatus    = "order.invalid_status"
	KeyOrderTransitionDenied = "order.transition_denied"

	// Users
	KeyUserDeleted  = "user.deleted"
	KeyUserNotFound = "user.not_found"
	KeyUserSelf     = "user.cannot_delete_self"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Upstream
	KeyBackendUnavailable = "backend.unavailable"
	KeyRateLimited        = "rate.limited"

	// File Upload
	KeyFileRequired     = "file.required"
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileInvalidType  = "file.invalid_type"
	KeyFileTooLarge     = "file.too_large"

	// Live streams
	KeyStreamUnsupported = "stream.unsupported"
)
