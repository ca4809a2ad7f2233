package cart

import "github.com/gin-gonic/gin"

// SetupCartRoutes expects the session middleware to run before these handlers.
func SetupCartRoutes(router *gin.RouterGroup, controller Controller) {
	cart := router.Group("/cart")
	{
		cart.GET("", controller.GetCart)                 // GET /api/v1/cart
		cart.DELETE("", controller.ClearCart)            // DELETE /api/v1/cart
		cart.GET("/summary", controller.GetSummary)      // GET /api/v1/cart/summary - Totals with fees
		cart.POST("/items", controller.AddItem)          // POST /api/v1/cart/items
		cart.PATCH("/items/:id", controller.UpdateItem)  // PATCH /api/v1/cart/items/:id
		cart.DELETE("/items/:id", controller.RemoveItem) // DELETE /api/v1/cart/items/:id
	}
}
