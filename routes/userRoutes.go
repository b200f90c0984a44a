package routes

import (
	"github.com/Kariqs/aroena-api/controllers"
	"github.com/Kariqs/aroena-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine) {
	users := server.Group("/users")
	{
		users.POST("/login-or-signup", controllers.LoginOrSignup)
		users.GET("", middlewares.RequireAdmin(), controllers.GetUsers)
		users.GET("/:id", controllers.GetUser)
		users.PUT("/:id", middlewares.RequireAdmin(), controllers.UpdateUser)
		users.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteUser)
	}
}
