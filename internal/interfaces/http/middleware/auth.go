package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/infrastructure/auth"
	"github.com/boomerhub/boomerhub/internal/shared/constants"
	apperrors "github.com/boomerhub/boomerhub/internal/shared/errors"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
	"github.com/boomerhub/boomerhub/internal/shared/utils"
)

// IdentityMiddleware decides which identity a request is charged to.
type IdentityMiddleware struct {
	jwtService     *auth.JWTService
	strictGuestIDs bool
	logger         logger.Interface
}

func NewIdentityMiddleware(jwtService *auth.JWTService, strictGuestIDs bool, logger logger.Interface) *IdentityMiddleware {
	return &IdentityMiddleware{
		jwtService:     jwtService,
		strictGuestIDs: strictGuestIDs,
		logger:         logger,
	}
}

// ResolveIdentity accepts a bearer access token (user identity) or an X-Guest-ID
// header (guest identity). A presented token that fails verification is rejected
// rather than downgraded to guest.
func (m *IdentityMiddleware) ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, present, ok := bearerToken(c); present {
			if !ok {
				utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid authorization header format"))
				c.Abort()
				return
			}
			if !m.authenticate(c, token) {
				return
			}
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader(constants.HeaderXGuestID))
		if guestID == "" {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError(constants.ErrMsgIdentityRequired))
			c.Abort()
			return
		}

		identity, err := usage.NewGuestIdentity(guestID, m.strictGuestIDs)
		if err != nil {
			utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid guest id", err.Error()))
			c.Abort()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// RequireAuth only admits requests with a valid bearer access token.
func (m *IdentityMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, ok := bearerToken(c)
		if !present {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}
		if !ok {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid authorization header format"))
			c.Abort()
			return
		}
		if !m.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// authenticate verifies token and stores the caller on the context. It aborts
// the request and returns false on failure.
func (m *IdentityMiddleware) authenticate(c *gin.Context, token string) bool {
	claims, err := m.jwtService.Verify(token)
	if err != nil {
		m.logger.Warnw("failed to verify token", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
		c.Abort()
		return false
	}

	identity, err := usage.NewUserIdentity(claims.UserID())
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
		c.Abort()
		return false
	}

	c.Set(constants.ContextKeyUserID, claims.UserID())
	c.Set(constants.ContextKeyUserRole, claims.Role.String())
	setIdentity(c, identity)
	return true
}

// bearerToken extracts the token from the Authorization header. present reports
// whether the header was sent at all; ok reports whether it was well formed.
func bearerToken(c *gin.Context) (token string, present, ok bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true, false
	}
	return strings.TrimSpace(parts[1]), true, true
}

func setIdentity(c *gin.Context, identity usage.Identity) {
	c.Set(constants.ContextKeyIdentityValue, identity)
	c.Set(constants.ContextKeyIdentity, identity.Key())
	c.Set(constants.ContextKeyIdentityType, identity.Type().String())
}

// IdentityFromContext returns the identity stored by ResolveIdentity or RequireAuth.
func IdentityFromContext(c *gin.Context) (usage.Identity, bool) {
	v, exists := c.Get(constants.ContextKeyIdentityValue)
	if !exists {
		return usage.Identity{}, false
	}
	identity, ok := v.(usage.Identity)
	return identity, ok
}
