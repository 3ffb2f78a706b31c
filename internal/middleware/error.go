// File: internal/middleware/error.go
package middleware

import (
	"net/http"

	"collab_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler turns errors attached with c.Error into an APIError response
// when the handler did not write one itself.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ginErr := c.Errors.Last()
		if apiErr, ok := common.IsAPIError(ginErr.Err); ok {
			c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
			return
		}

		logger.Error("Unhandled application error",
			zap.Error(ginErr.Err),
			zap.String("path", c.Request.URL.Path),
			zap.Any("meta", ginErr.Meta),
			zap.String("request_id", c.GetString(RequestIDContextKey)),
		)
		genericError := common.ErrInternalServer.WithDetails("An unexpected error occurred.")
		if gin.Mode() == gin.DebugMode {
			genericError = common.ErrInternalServer.WithDetails(ginErr.Err.Error())
		}
		c.AbortWithStatusJSON(genericError.StatusCode, genericError)
	}
}

// NoRoute answers unknown paths with a NOT_FOUND APIError.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		common.RespondWithError(c, common.ErrNotFound.WithDetails("The requested endpoint does not exist."))
	}
}

// NoMethod answers known paths called with the wrong method.
func NoMethod() gin.HandlerFunc {
	methodNotAllowed := common.NewAPIError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The method is not allowed for the requested URL.")
	return func(c *gin.Context) {
		common.RespondWithError(c, methodNotAllowed)
	}
}
