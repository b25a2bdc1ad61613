package routes

import (
	orderControllers "github.com/eco-pj/storefront-api/controllers/order"
	"github.com/eco-pj/storefront-api/middleware"
	"github.com/eco-pj/storefront-api/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, adapter payment.Adapter) {
	// websocket endpoint for real-time order updates
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Create a new order from the caller's cart
		orders.POST("", orderControllers.PlaceOrderHandler(db, adapter))

		// Fetch the caller's orders
		orders.GET("", orderControllers.GetUserOrdersHandler(db))

		// Admin status transition (stock deduction/restoration happens here)
		orders.PUT("/:id", middleware.RequireAdmin, orderControllers.UpdateOrderStatusHandler(db))
	}
}
