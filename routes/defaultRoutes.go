package routes

import (
	"github.com/Kariqs/aroena-api/controllers"
	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/metrics"
	"github.com/Kariqs/aroena-api/storage"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/metrics", gin.WrapH(metrics.Handler()))

	if local, ok := initializers.Images.(*storage.LocalStore); ok {
		server.Static("/uploads", local.Root())
	}
}
