package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tvojakarta/internal/shared/utils/response"
	"tvojakarta/pkg/logger"
)

// LanguageResolver picks the display language for a request that did not
// name one explicitly.
type LanguageResolver func(c *gin.Context) Language

// DefaultLanguageResolver always answers Serbian.
func DefaultLanguageResolver(c *gin.Context) Language {
	return DefaultLanguage
}

type Controller interface {
	ListEvents(c *gin.Context)
	SearchEvents(c *gin.Context)
	GetFeaturedEvents(c *gin.Context)
	GetUpcomingEvents(c *gin.Context)
	GetEvent(c *gin.Context)
	GetCategories(c *gin.Context)
	GetLocations(c *gin.Context)
}

type controller struct {
	service  Service
	resolver LanguageResolver
	log      *logger.Logger
}

func NewController(service Service, resolver LanguageResolver) Controller {
	if resolver == nil {
		resolver = DefaultLanguageResolver
	}
	return &controller{service: service, resolver: resolver, log: logger.GetDefault()}
}

func (ctrl *controller) language(c *gin.Context, explicit string) Language {
	if lang, ok := ParseLanguage(explicit); ok {
		return lang
	}
	return ctrl.resolver(c)
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Param search query string false "Search term"
// @Param category query string false "Category key or 'all'"
// @Param location query string false "Location in the display language or 'all'"
// @Param sort query string false "date | price-low | price-high | title"
// @Param lang query string false "sr | en"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.StandardApiResponse{data=EventListResponse}
// @Router /events [get]
func (ctrl *controller) ListEvents(c *gin.Context) {
	var query EventListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	lang := ctrl.language(c, query.Lang)
	events, err := ctrl.service.ListEvents(c.Request.Context(), Query{
		Search:   query.Search,
		Category: query.Category,
		Location: query.Location,
		Sort:     ParseSortKey(query.Sort),
		Language: lang,
		Limit:    query.Limit,
	})
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", newEventListResponse(events, lang), nil)
}

// SearchEvents godoc
// @Summary Search events in both languages
// @Tags events
// @Param q query string true "Search term"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.StandardApiResponse{data=EventListResponse}
// @Router /events/search [get]
func (ctrl *controller) SearchEvents(c *gin.Context) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	lang := ctrl.language(c, query.Lang)
	events, err := ctrl.service.SearchEvents(c.Request.Context(), query.Q, query.Limit, lang)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Search completed successfully", newEventListResponse(events, lang), nil)
}

// GetFeaturedEvents godoc
// @Summary Featured events
// @Tags events
// @Success 200 {object} response.StandardApiResponse{data=EventListResponse}
// @Router /events/featured [get]
func (ctrl *controller) GetFeaturedEvents(c *gin.Context) {
	var query ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	lang := ctrl.language(c, query.Lang)
	events, err := ctrl.service.GetFeaturedEvents(c.Request.Context(), lang, query.Limit)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Featured events retrieved successfully", newEventListResponse(events, lang), nil)
}

// GetUpcomingEvents godoc
// @Summary Upcoming events, soonest first
// @Tags events
// @Success 200 {object} response.StandardApiResponse{data=EventListResponse}
// @Router /events/upcoming [get]
func (ctrl *controller) GetUpcomingEvents(c *gin.Context) {
	var query ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	lang := ctrl.language(c, query.Lang)
	events, err := ctrl.service.GetUpcomingEvents(c.Request.Context(), lang, query.Limit)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Upcoming events retrieved successfully", newEventListResponse(events, lang), nil)
}

// GetEvent godoc
// @Summary Event details
// @Tags events
// @Param id path string true "Event ID"
// @Success 200 {object} response.StandardApiResponse{data=LocalizedEvent}
// @Failure 404 {object} response.StandardApiResponse
// @Router /events/{id} [get]
func (ctrl *controller) GetEvent(c *gin.Context) {
	lang := ctrl.language(c, c.Query("lang"))
	event, err := ctrl.service.GetEvent(c.Request.Context(), c.Param("id"), lang)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

// GetCategories godoc
// @Summary Event categories with localized labels
// @Tags events
// @Success 200 {object} response.StandardApiResponse{data=CategoriesResponse}
// @Router /categories [get]
func (ctrl *controller) GetCategories(c *gin.Context) {
	lang := ctrl.language(c, c.Query("lang"))
	categories, err := ctrl.service.GetCategories(c.Request.Context(), lang)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Categories retrieved successfully",
		CategoriesResponse{Categories: categories, Language: lang}, nil)
}

// GetLocations godoc
// @Summary Event locations in the display language
// @Tags events
// @Success 200 {object} response.StandardApiResponse{data=LocationsResponse}
// @Router /locations [get]
func (ctrl *controller) GetLocations(c *gin.Context) {
	lang := ctrl.language(c, c.Query("lang"))
	locations, err := ctrl.service.GetLocations(c.Request.Context(), lang)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Locations retrieved successfully",
		LocationsResponse{Locations: locations, Language: lang}, nil)
}

func (ctrl *controller) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
	default:
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load catalog", nil, nil)
	}
}
