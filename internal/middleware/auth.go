// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"strings"

	"collab_hub_backend/internal/common"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// FirebaseUIDKey is the context key for the verified Firebase UID
	FirebaseUIDKey = "firebaseUID"
	// FirebaseTokenKey stores the whole verified token
	FirebaseTokenKey = "firebaseToken"
)

// TokenVerifier verifies Firebase ID tokens.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuth requires a valid Firebase ID token in the Authorization
// header and stores the verified UID in the context. It does not decide what
// the caller may do with it.
func FirebaseAuth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Firebase ID token rejected", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired ID token."))
			return
		}

		c.Set(FirebaseUIDKey, token.UID)
		c.Set(FirebaseTokenKey, token)
		logger.Debug("Firebase user authenticated", zap.String("uid", token.UID))

		c.Next()
	}
}

// Passthrough is installed on write routes when authentication is disabled.
func Passthrough() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// GetFirebaseUIDFromContext returns the verified UID, or "" when the request
// was not authenticated.
func GetFirebaseUIDFromContext(c *gin.Context) string {
	return c.GetString(FirebaseUIDKey)
}
