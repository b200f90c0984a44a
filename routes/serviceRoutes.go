package routes

import (
	"github.com/Kariqs/aroena-api/controllers"
	"github.com/Kariqs/aroena-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ServiceRoutes(server *gin.Engine) {
	services := server.Group("/services")
	{
		services.GET("", controllers.GetServices)
		services.GET("/:id", controllers.GetService)
		services.POST("", middlewares.RequireAdmin(), controllers.CreateService)
		services.PUT("/:id", middlewares.RequireAdmin(), controllers.UpdateService)
		services.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteService)
	}
}
