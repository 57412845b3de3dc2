package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/serializer"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/tokens"
)

// IdentityKey is the gin context key holding the session identity.
const IdentityKey = "identity"

// Session decodes an optional bearer session token. Requests without a token
// pass through anonymously; a token that does not verify is rejected.
// It also sets the user_id attribute on the current span for telemetry filtering.
func Session(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		id, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "), cfg.Auth.JwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.Int64("user_id", int64(id.UserID)))
		}

		c.Set(IdentityKey, id)
		c.Request = c.Request.WithContext(tokens.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireSession answers 401 unless Session attached an identity.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := tokens.FromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.CheckLogin())
			return
		}
		c.Next()
	}
}
