// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAdminAccessDenied      = "admin.access_denied"
	KeyNotAuthorized          = "auth.not_authorized"

	// Tokens
	KeyTokenMinted      = "token.minted"
	KeyTokenNotFound    = "token.not_found"
	KeyTokenTransferred = "token.transferred"
	KeyTokenNotOwner    = "token.not_owner"
	KeyTokenSameOwner   = "token.same_owner"
	KeyInvalidRoyalty   = "token.invalid_royalty"

	// Market
	KeyMarketPurchased           = "market.purchased"
	KeyMarketInvalidPrice        = "market.invalid_price"
	KeyMarketInvalidPaymentToken = "market.invalid_payment_token"
	KeyMarketPaymentFailed       = "market.payment_failed"
	KeyMarketOverflow            = "market.overflow"
	KeyMarketDefaultTokenSet     = "market.default_token_set"
	KeyPaymentTokenRegistered    = "market.payment_token_registered"

	// Fan points
	KeyPointsAwarded = "points.awarded"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
