package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/metrics"
	"github.com/Kariqs/aroena-api/models"
	"github.com/Kariqs/aroena-api/services"
	"github.com/Kariqs/aroena-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const maxImageSize = 10 << 20

func catalogService() *services.CatalogService {
	return services.NewCatalogService(initializers.DB)
}

func GetServices(ctx *gin.Context) {
	list, err := catalogService().List(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, list)
}

func GetService(ctx *gin.Context) {
	serviceID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	service, err := catalogService().Get(ctx.Request.Context(), serviceID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, service)
}

func CreateService(ctx *gin.Context) {
	data, image, ok := bindServiceData(ctx, true)
	if !ok {
		return
	}
	if !attachImage(ctx, &data, image) {
		return
	}

	service, err := catalogService().Create(ctx.Request.Context(), data)
	if err != nil {
		discardImage(ctx, data.Image, image)
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, service)
}

func UpdateService(ctx *gin.Context) {
	serviceID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	data, image, ok := bindServiceData(ctx, false)
	if !ok {
		return
	}
	if !attachImage(ctx, &data, image) {
		return
	}

	service, err := catalogService().Update(ctx.Request.Context(), serviceID, data)
	if err != nil {
		discardImage(ctx, data.Image, image)
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, service)
}

func DeleteService(ctx *gin.Context) {
	serviceID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := catalogService().Delete(ctx.Request.Context(), serviceID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Service deleted successfully."})
}

// bindServiceData accepts either a JSON body or the multipart form sent by the
// dashboard, and validates it. An "image" file in the form is returned
// unread so nothing is stored for a request that is going to be rejected.
func bindServiceData(ctx *gin.Context, creating bool) (models.ServiceData, *multipart.FileHeader, bool) {
	var (
		data  models.ServiceData
		image *multipart.FileHeader
	)

	if !strings.HasPrefix(ctx.ContentType(), "multipart/") {
		if err := ctx.ShouldBindJSON(&data); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
			return data, nil, false
		}
	} else {
		var form models.ServiceForm
		if err := ctx.ShouldBind(&form); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
			return data, nil, false
		}

		var err error
		if data, err = form.ToServiceData(); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			return data, nil, false
		}

		file, err := ctx.FormFile("image")
		switch {
		case err == nil:
			image = file
		case !errors.Is(err, http.ErrMissingFile):
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid image upload")
			return data, nil, false
		}
	}

	if err := binding.Validator.ValidateStruct(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return data, nil, false
	}
	if err := services.ValidateServiceData(data, creating); err != nil {
		respondWithError(ctx, err)
		return data, nil, false
	}
	return data, image, true
}

// attachImage uploads image, if any, and points data at it.
func attachImage(ctx *gin.Context, data *models.ServiceData, image *multipart.FileHeader) bool {
	if image == nil {
		return true
	}
	url, err := uploadImage(ctx, image)
	if err != nil {
		utils.Logger.Error("image upload failed", "filename", image.Filename, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload image")
		return false
	}
	data.Image = &url
	return true
}

// discardImage removes an image uploaded for a request the catalog then refused.
func discardImage(ctx *gin.Context, url *string, image *multipart.FileHeader) {
	if image == nil || url == nil || initializers.Images == nil {
		return
	}
	driver := initializers.Images.Driver()
	if err := initializers.Images.Delete(ctx.Request.Context(), *url); err != nil {
		utils.Logger.Warn("failed to remove orphaned image", "url", *url, "error", err)
		return
	}
	metrics.ImageUploads.WithLabelValues(driver, "discarded").Inc()
}

func uploadImage(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	if initializers.Images == nil {
		return "", errors.New("image storage is not configured")
	}
	driver := initializers.Images.Driver()

	if file.Size > maxImageSize {
		metrics.ImageUploads.WithLabelValues(driver, "rejected").Inc()
		return "", fmt.Errorf("image %s exceeds %d bytes", file.Filename, maxImageSize)
	}

	f, err := file.Open()
	if err != nil {
		metrics.ImageUploads.WithLabelValues(driver, "failed").Inc()
		return "", err
	}
	defer f.Close()

	url, err := initializers.Images.Upload(ctx.Request.Context(), file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		metrics.ImageUploads.WithLabelValues(driver, "failed").Inc()
		return "", err
	}
	metrics.ImageUploads.WithLabelValues(driver, "success").Inc()
	return url, nil
}
