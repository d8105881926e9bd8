package middleware

import (
	"strings"

	"github.com/docwell/editor-server/internal/pkg/jwt"
	"github.com/docwell/editor-server/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "user_email"
)

// Auth rejects requests without a valid backend access token.
func Auth(verifier *jwt.Verifier) gin.HandlerFunc {
	return authenticate(verifier, true)
}

// OptionalAuth identifies the caller when a valid token is sent. Missing or
// bad tokens leave the request anonymous.
func OptionalAuth(verifier *jwt.Verifier) gin.HandlerFunc {
	return authenticate(verifier, false)
}

func authenticate(verifier *jwt.Verifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		var claims *jwt.Claims
		if token != "" && verifier.Enabled() {
			claims, _ = verifier.Parse(token)
		}
		if claims == nil || claims.UserID() == "" {
			if required {
				response.Unauthorized(c)
				return
			}
			c.Next()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID())
		if claims.Email != "" {
			c.Set(ContextKeyEmail, claims.Email)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user, or "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// bearerToken strips an optional, case-insensitive "Bearer " prefix.
func bearerToken(header string) string {
	token := strings.TrimSpace(header)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
