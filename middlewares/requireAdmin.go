package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/services"
	"github.com/Kariqs/aroena-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	// AdminCookie carries the admin token for browser clients.
	AdminCookie = "admin"

	adminContextKey = "admin"
)

func tokenFromRequest(ctx *gin.Context) string {
	if header := ctx.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := ctx.Cookie(AdminCookie); err == nil {
		return cookie
	}
	return ""
}

func authenticate(ctx *gin.Context) (*utils.AdminClaims, error) {
	token := tokenFromRequest(ctx)
	if token == "" {
		return nil, &services.Error{Kind: services.KindUnauthorized, Message: "authentication required"}
	}
	adminService := services.NewAdminService(initializers.DB, initializers.Tokens, initializers.Revocations)
	return adminService.Authenticate(ctx.Request.Context(), token)
}

// RequireAdmin rejects the request unless it carries a valid, unrevoked admin
// token in the Authorization header or the admin cookie.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := authenticate(ctx)
		if err != nil {
			status := http.StatusUnauthorized
			message := "authentication required"
			if serviceErr, ok := services.AsError(err); ok {
				message = serviceErr.Message
				if serviceErr.Kind == services.KindInternal {
					utils.Logger.Error("admin authentication failed", "error", err)
					status = http.StatusInternalServerError
				}
			}
			ctx.AbortWithStatusJSON(status, gin.H{"message": message})
			return
		}

		ctx.Set(adminContextKey, claims)
		ctx.Next()
	}
}

// OptionalAdmin records the admin claims when a valid token is present and
// lets every request through.
func OptionalAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, err := authenticate(ctx); err == nil {
			ctx.Set(adminContextKey, claims)
		}
		ctx.Next()
	}
}

// CurrentAdmin returns the claims stored by RequireAdmin or OptionalAdmin.
func CurrentAdmin(ctx *gin.Context) (*utils.AdminClaims, bool) {
	value, exists := ctx.Get(adminContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.AdminClaims)
	return claims, ok
}
