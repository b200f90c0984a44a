package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kariqs/aroena-api/services"
	"github.com/Kariqs/aroena-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// respondWithError translates a service error into its HTTP status. Internal
// causes are logged and never returned to the client.
func respondWithError(ctx *gin.Context, err error) {
	serviceErr, ok := services.AsError(err)
	if !ok {
		utils.Logger.Error("unhandled error", "path", ctx.FullPath(), "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	switch serviceErr.Kind {
	case services.KindBadRequest:
		sendErrorResponse(ctx, http.StatusBadRequest, serviceErr.Message)
	case services.KindUnauthorized:
		sendErrorResponse(ctx, http.StatusUnauthorized, serviceErr.Message)
	case services.KindNotFound:
		sendErrorResponse(ctx, http.StatusNotFound, serviceErr.Message)
	default:
		utils.Logger.Error(serviceErr.Message, "path", ctx.FullPath(), "error", serviceErr.Err)
		sendErrorResponse(ctx, http.StatusInternalServerError, serviceErr.Message)
	}
}

// parseID reads a positive numeric path parameter, answering 400 otherwise.
func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse "+param)
		return 0, false
	}
	return uint(id), true
}
