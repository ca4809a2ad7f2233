package preferences

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/shared/middleware"
	"tvojakarta/internal/shared/utils/response"
	"tvojakarta/pkg/logger"
)

// LanguageResolver picks the session's stored language for the other
// controllers.
func LanguageResolver(svc Service) catalog.LanguageResolver {
	return func(c *gin.Context) catalog.Language {
		return svc.Load(c.Request.Context(), middleware.GetSessionID(c)).Language
	}
}

type Controller interface {
	GetPreferences(c *gin.Context)
	SetLanguage(c *gin.Context)
	SaveCookies(c *gin.Context)
	AcceptAllCookies(c *gin.Context)
	RejectAllCookies(c *gin.Context)
}

type controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service) Controller {
	return &controller{service: service, log: logger.GetDefault()}
}

// GetPreferences godoc
// @Summary Stored language and cookie choices of the current session
// @Tags preferences
// @Success 200 {object} response.StandardApiResponse{data=Preferences}
// @Router /preferences [get]
func (ctrl *controller) GetPreferences(c *gin.Context) {
	prefs := ctrl.service.Load(c.Request.Context(), middleware.GetSessionID(c))
	response.RespondJSON(c, "success", http.StatusOK, "Preferences retrieved successfully", prefs, nil)
}

// SetLanguage godoc
// @Summary Change the display language
// @Tags preferences
// @Param body body SetLanguageRequest true "sr or en"
// @Success 200 {object} response.StandardApiResponse{data=Preferences}
// @Failure 400 {object} response.StandardApiResponse
// @Router /preferences/language [put]
func (ctrl *controller) SetLanguage(c *gin.Context) {
	var req SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	prefs, err := ctrl.service.SetLanguage(c.Request.Context(), middleware.GetSessionID(c), catalog.Language(req.Language))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Language updated", prefs, nil)
}

// SaveCookies godoc
// @Summary Save selected cookie categories
// @Tags preferences
// @Param body body SaveCookiesRequest true "Optional cookie categories"
// @Success 200 {object} response.StandardApiResponse{data=Preferences}
// @Router /preferences/cookies [put]
func (ctrl *controller) SaveCookies(c *gin.Context) {
	var req SaveCookiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	prefs, err := ctrl.service.SaveSelected(c.Request.Context(), middleware.GetSessionID(c), CookiePreferences{
		Functional: req.Functional,
		Analytics:  req.Analytics,
		Marketing:  req.Marketing,
	})
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Cookie preferences saved", prefs, nil)
}

// AcceptAllCookies godoc
// @Summary Accept every cookie category
// @Tags preferences
// @Success 200 {object} response.StandardApiResponse{data=Preferences}
// @Router /preferences/cookies/accept-all [post]
func (ctrl *controller) AcceptAllCookies(c *gin.Context) {
	prefs, err := ctrl.service.AcceptAll(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Cookie preferences saved", prefs, nil)
}

// RejectAllCookies godoc
// @Summary Keep only necessary cookies
// @Tags preferences
// @Success 200 {object} response.StandardApiResponse{data=Preferences}
// @Router /preferences/cookies/reject-all [post]
func (ctrl *controller) RejectAllCookies(c *gin.Context) {
	prefs, err := ctrl.service.RejectAll(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Cookie preferences saved", prefs, nil)
}

func (ctrl *controller) handleError(c *gin.Context, err error) {
	ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
	response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to save preferences", nil, nil)
}
