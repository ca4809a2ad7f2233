package catalog

import "github.com/gin-gonic/gin"

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	events := router.Group("/events")
	{
		events.GET("", controller.ListEvents)                 // GET /api/v1/events - Filtered, sorted listing
		events.GET("/search", controller.SearchEvents)        // GET /api/v1/events/search?q= - Bilingual search
		events.GET("/featured", controller.GetFeaturedEvents) // GET /api/v1/events/featured
		events.GET("/upcoming", controller.GetUpcomingEvents) // GET /api/v1/events/upcoming
		events.GET("/:id", controller.GetEvent)               // GET /api/v1/events/:id
	}

	router.GET("/categories", controller.GetCategories) // GET /api/v1/categories
	router.GET("/locations", controller.GetLocations)   // GET /api/v1/locations
}
