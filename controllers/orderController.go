package controllers

import (
	"net/http"

	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/middlewares"
	"github.com/Kariqs/aroena-api/models"
	"github.com/Kariqs/aroena-api/services"
	"github.com/gin-gonic/gin"
)

func orderService() *services.OrderService {
	return services.NewOrderService(initializers.DB)
}

func CreateOrder(ctx *gin.Context) {
	var orderData models.CreateOrderData
	if err := ctx.ShouldBindJSON(&orderData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := orderService().Create(ctx.Request.Context(), orderData)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, order)
}

func GetOrders(ctx *gin.Context) {
	orders, err := orderService().List(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, orders)
}

func GetOrdersByUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}

	orders, err := orderService().ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, orders)
}

func GetOrderById(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	order, err := orderService().Get(ctx.Request.Context(), orderID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// UpdateOrder changes the quantity of a pending order.
func UpdateOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var orderData models.UpdateOrderData
	if err := ctx.ShouldBindJSON(&orderData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := orderService().UpdateQuantity(ctx.Request.Context(), orderID, orderData.Quantity)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// UpdateOrderStatus lets anyone mark an order PAID, which is what the payment
// page does. Every other status is an admin decision.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var statusData models.UpdateOrderStatusData
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status")
		return
	}

	if statusData.Status != models.OrderPaid {
		if _, isAdmin := middlewares.CurrentAdmin(ctx); !isAdmin {
			sendErrorResponse(ctx, http.StatusUnauthorized, "admin access required")
			return
		}
	}

	order, err := orderService().UpdateStatus(ctx.Request.Context(), orderID, statusData.Status)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func DeleteOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	_, isAdmin := middlewares.CurrentAdmin(ctx)
	if err := orderService().Delete(ctx.Request.Context(), orderID, isAdmin); err != nil {
		respondWithError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}
