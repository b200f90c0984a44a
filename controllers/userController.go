package controllers

import (
	"net/http"

	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/models"
	"github.com/Kariqs/aroena-api/services"
	"github.com/gin-gonic/gin"
)

func userService() *services.UserService {
	return services.NewUserService(initializers.DB)
}

// LoginOrSignup identifies a guest by phone number, creating the account on
// first use.
func LoginOrSignup(ctx *gin.Context) {
	var loginData models.LoginOrSignupData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := userService().LoginOrSignup(ctx.Request.Context(), loginData)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func GetUsers(ctx *gin.Context) {
	users, err := userService().List(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, users)
}

func GetUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	user, err := userService().Get(ctx.Request.Context(), userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func UpdateUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var userData models.UpdateUserData
	if err := ctx.ShouldBindJSON(&userData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := userService().Update(ctx.Request.Context(), userID, userData)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func DeleteUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := userService().Delete(ctx.Request.Context(), userID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully."})
}
