package orders

import "github.com/gin-gonic/gin"

func SetupOrderRoutes(router *gin.RouterGroup, controller Controller) {
	orders := router.Group("/orders")
	{
		orders.GET("", controller.ListOrders)       // GET /api/v1/orders - Current session's orders
		orders.GET("/:number", controller.GetOrder) // GET /api/v1/orders/:number
	}
}
