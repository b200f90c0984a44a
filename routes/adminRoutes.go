package routes

import (
	"github.com/Kariqs/aroena-api/controllers"
	"github.com/Kariqs/aroena-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine, loginPerMinute int) {
	admin := server.Group("/admin")
	{
		admin.POST("/create", middlewares.OptionalAdmin(), controllers.CreateAdmin)
		admin.POST("/login", middlewares.RateLimit(loginPerMinute), controllers.AdminLogin)
	}

	protected := admin.Group("", middlewares.RequireAdmin())
	{
		protected.POST("/logout", controllers.AdminLogout)
		protected.GET("", controllers.GetAdmins)
		protected.GET("/dashboard", controllers.GetDashboard)
		protected.DELETE("/:id", controllers.DeleteAdmin)
	}
}
