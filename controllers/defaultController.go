package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Aroena API. Book rooms and order food at Aroena.

The following are the endpoints for this API:

USERS
- POST "/users/login-or-signup" - Log in or create a guest account by phone
- GET "/users" - Get all users (admin)
- GET "/users/:id" - Get user by ID
- PUT "/users/:id" - Update user (admin)
- DELETE "/users/:id" - Delete user without orders (admin)

SERVICES
- GET "/services" - Get all rooms and food items
- GET "/services/:id" - Get service by ID
- POST "/services" - Create service, optional image upload (admin)
- PUT "/services/:id" - Update service (admin)
- DELETE "/services/:id" - Delete service without orders (admin)

ORDERS
- POST "/orders" - Place an order
- GET "/orders" - Get all orders (admin)
- GET "/orders/user/:userId" - Get orders for a specific user
- GET "/orders/:id" - Get order by ID
- PUT "/orders/:id" - Change the quantity of a pending order
- PUT "/orders/:id/status" - Update order status
- DELETE "/orders/:id" - Cancel or delete order

ADMIN
- POST "/admin/create" - Create admin account
- POST "/admin/login" - Admin login
- POST "/admin/logout" - Admin logout
- GET "/admin" - List admins
- DELETE "/admin/:id" - Delete admin
- GET "/admin/dashboard" - Dashboard statistics`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
