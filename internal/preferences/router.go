package preferences

import "github.com/gin-gonic/gin"

func SetupPreferenceRoutes(router *gin.RouterGroup, controller Controller) {
	prefs := router.Group("/preferences")
	{
		prefs.GET("", controller.GetPreferences)                       // GET /api/v1/preferences
		prefs.PUT("/language", controller.SetLanguage)                 // PUT /api/v1/preferences/language
		prefs.PUT("/cookies", controller.SaveCookies)                  // PUT /api/v1/preferences/cookies - Selected categories
		prefs.POST("/cookies/accept-all", controller.AcceptAllCookies) // POST /api/v1/preferences/cookies/accept-all
		prefs.POST("/cookies/reject-all", controller.RejectAllCookies) // POST /api/v1/preferences/cookies/reject-all
	}
}
