package usage

import "errors"

var (
	// ErrRecordNotFound is returned by a Store when no record exists for an identity
	ErrRecordNotFound = errors.New("usage record not found")

	// ErrEmptyIdentity is returned when the identity key is blank
	ErrEmptyIdentity = errors.New("identity is required")

	// ErrInvalidIdentityType is returned for anything other than guest or user
	ErrInvalidIdentityType = errors.New("invalid identity type")

	// ErrInvalidGuestID is returned when a guest key is not a UUID
	ErrInvalidGuestID = errors.New("guest id must be a valid UUID")

	// ErrQuotaExceeded is returned when the identity has no invocations left today
	ErrQuotaExceeded = errors.New("daily usage limit exceeded")

	// ErrInvalidLimit is returned when a cap is not a positive integer
	ErrInvalidLimit = errors.New("usage limit must be positive")
)
