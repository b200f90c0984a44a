package routes

import (
	"github.com/Kariqs/aroena-api/controllers"
	"github.com/Kariqs/aroena-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders")
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("", middlewares.RequireAdmin(), controllers.GetOrders)
		orders.GET("/user/:userId", controllers.GetOrdersByUser)
		orders.GET("/:id", controllers.GetOrderById)
		orders.PUT("/:id", controllers.UpdateOrder)
		orders.PUT("/:id/status", middlewares.OptionalAdmin(), controllers.UpdateOrderStatus)
		orders.DELETE("/:id", middlewares.OptionalAdmin(), controllers.DeleteOrder)
	}
}
