package controllers

import (
	"net/http"
	"time"

	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/middlewares"
	"github.com/Kariqs/aroena-api/models"
	"github.com/Kariqs/aroena-api/services"
	"github.com/gin-gonic/gin"
)

func adminService() *services.AdminService {
	return services.NewAdminService(initializers.DB, initializers.Tokens, initializers.Revocations)
}

// CreateAdmin registers an admin. The first admin can be created without a
// token; after that the caller must be an admin.
func CreateAdmin(ctx *gin.Context) {
	var credentials models.AdminCredentials
	if err := ctx.ShouldBindJSON(&credentials); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var (
		admin *models.Admin
		err   error
	)
	if _, isAdmin := middlewares.CurrentAdmin(ctx); isAdmin {
		admin, err = adminService().CreateAdmin(ctx.Request.Context(), credentials.Email, credentials.Password)
	} else {
		admin, err = adminService().BootstrapAdmin(ctx.Request.Context(), credentials.Email, credentials.Password)
	}
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Admin created successfully.",
		"admin":   models.AdminInfo{ID: admin.ID, Email: admin.Email},
	})
}

func AdminLogin(ctx *gin.Context) {
	var credentials models.AdminCredentials
	if err := ctx.ShouldBindJSON(&credentials); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result, err := adminService().Login(ctx.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.AdminCookie, result.Token, maxAge, "/", "", ctx.Request.TLS != nil, true)

	sendJSONResponse(ctx, http.StatusOK, result)
}

func AdminLogout(ctx *gin.Context) {
	claims, ok := middlewares.CurrentAdmin(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := adminService().Logout(ctx.Request.Context(), claims); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.SetCookie(middlewares.AdminCookie, "", -1, "/", "", ctx.Request.TLS != nil, true)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Logged out successfully."})
}

func GetAdmins(ctx *gin.Context) {
	admins, err := adminService().ListAdmins(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, admins)
}

func DeleteAdmin(ctx *gin.Context) {
	adminID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := adminService().DeleteAdmin(ctx.Request.Context(), adminID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Admin deleted successfully."})
}

func GetDashboard(ctx *gin.Context) {
	stats, err := services.NewDashboardService(initializers.DB).Stats(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, stats)
}
