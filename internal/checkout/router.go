package checkout

import "github.com/gin-gonic/gin"

func SetupCheckoutRoutes(router *gin.RouterGroup, controller Controller) {
	checkout := router.Group("/checkout")
	{
		checkout.POST("", controller.Submit)          // POST /api/v1/checkout - Start payment for the cart
		checkout.GET("/status", controller.GetStatus) // GET /api/v1/checkout/status
	}
}
