package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXGuestID      = "X-Guest-ID"
	HeaderRetryAfter    = "Retry-After"

	// Context keys
	ContextKeyUserID       = "user_id"
	ContextKeyUserRole     = "user_role"
	ContextKeyRequestID    = "request_id"
	ContextKeyIdentity     = "usage_identity"
	ContextKeyIdentityType = "usage_identity_type"

	// ContextKeyIdentityValue holds the resolved usage.Identity value itself.
	ContextKeyIdentityValue = "usage_identity_value"

	// Table names
	TableUsageRecords = "usage_records"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgIdentityRequired    = "Sign in or provide an X-Guest-ID header"
)
