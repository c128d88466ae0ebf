package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/types"
)

// AuthMiddleware extracts the opaque session token from the Authorization
// header, resolves it against the session registry and stores both token
// and login in the request context. Tokens stay valid until the system-wide
// shutdown or until the account is removed.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})

			return
		}

		token := parts[1]

		login, err := app.Jackut.Network().ResolveSession(token)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
			return
		}

		ctx.Set(types.ContextSessionKey, token)
		ctx.Set(types.ContextLoginKey, login)
		ctx.Next()
	}
}
