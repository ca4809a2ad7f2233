package cart

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/shared/middleware"
	"tvojakarta/internal/shared/utils/response"
	"tvojakarta/pkg/logger"
)

type Controller interface {
	GetCart(c *gin.Context)
	GetSummary(c *gin.Context)
	AddItem(c *gin.Context)
	UpdateItem(c *gin.Context)
	RemoveItem(c *gin.Context)
	ClearCart(c *gin.Context)
}

type controller struct {
	service     Service
	resolver    catalog.LanguageResolver
	maxQuantity int
	log         *logger.Logger
}

// NewController caps every add and update at maxQuantity tickets per line.
func NewController(service Service, resolver catalog.LanguageResolver, maxQuantity int) Controller {
	if resolver == nil {
		resolver = catalog.DefaultLanguageResolver
	}
	if maxQuantity <= 0 {
		maxQuantity = 8
	}
	return &controller{
		service:     service,
		resolver:    resolver,
		maxQuantity: maxQuantity,
		log:         logger.GetDefault(),
	}
}

func (ctrl *controller) language(c *gin.Context) catalog.Language {
	if lang, ok := catalog.ParseLanguage(c.Query("lang")); ok {
		return lang
	}
	return ctrl.resolver(c)
}

// GetCart godoc
// @Summary Current session cart
// @Tags cart
// @Success 200 {object} response.StandardApiResponse{data=CartResponse}
// @Router /cart [get]
func (ctrl *controller) GetCart(c *gin.Context) {
	snap := ctrl.service.GetCart(middleware.GetSessionID(c))
	response.RespondJSON(c, "success", http.StatusOK, "Cart retrieved successfully", toCartResponse(snap, ctrl.language(c)), nil)
}

// GetSummary godoc
// @Summary Cart with service and processing fees
// @Tags cart
// @Success 200 {object} response.StandardApiResponse{data=SummaryResponse}
// @Router /cart/summary [get]
func (ctrl *controller) GetSummary(c *gin.Context) {
	summary := ctrl.service.GetSummary(middleware.GetSessionID(c))
	response.RespondJSON(c, "success", http.StatusOK, "Cart summary retrieved successfully", SummaryResponse{
		CartResponse: toCartResponse(summary.Snapshot, ctrl.language(c)),
		Quote:        summary.Quote,
	}, nil)
}

// AddItem godoc
// @Summary Add tickets to the cart
// @Tags cart
// @Param body body AddItemRequest true "Event, ticket type and quantity"
// @Success 201 {object} response.StandardApiResponse{data=CartResponse}
// @Failure 400 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /cart/items [post]
func (ctrl *controller) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if req.Quantity > ctrl.maxQuantity {
		ctrl.quantityOutOfRange(c, 1)
		return
	}

	sessionID := middleware.GetSessionID(c)
	if _, err := ctrl.service.AddTicket(c.Request.Context(), sessionID, req); err != nil {
		ctrl.handleError(c, err)
		return
	}

	snap := ctrl.service.GetCart(sessionID)
	response.RespondJSON(c, "success", http.StatusCreated, "Tickets added to cart", toCartResponse(snap, ctrl.language(c)), nil)
}

// UpdateItem godoc
// @Summary Change a line's quantity; 0 removes it
// @Tags cart
// @Param id path string true "Cart item ID"
// @Param body body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} response.StandardApiResponse{data=CartResponse}
// @Failure 404 {object} response.StandardApiResponse
// @Router /cart/items/{id} [patch]
func (ctrl *controller) UpdateItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if *req.Quantity > ctrl.maxQuantity {
		ctrl.quantityOutOfRange(c, 0)
		return
	}

	sessionID := middleware.GetSessionID(c)
	if err := ctrl.service.UpdateQuantity(c.Request.Context(), sessionID, c.Param("id"), *req.Quantity); err != nil {
		ctrl.handleError(c, err)
		return
	}

	snap := ctrl.service.GetCart(sessionID)
	response.RespondJSON(c, "success", http.StatusOK, "Cart updated successfully", toCartResponse(snap, ctrl.language(c)), nil)
}

// RemoveItem godoc
// @Summary Remove a line from the cart
// @Tags cart
// @Param id path string true "Cart item ID"
// @Success 200 {object} response.StandardApiResponse{data=CartResponse}
// @Failure 404 {object} response.StandardApiResponse
// @Router /cart/items/{id} [delete]
func (ctrl *controller) RemoveItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if err := ctrl.service.RemoveItem(c.Request.Context(), sessionID, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}

	snap := ctrl.service.GetCart(sessionID)
	response.RespondJSON(c, "success", http.StatusOK, "Item removed from cart", toCartResponse(snap, ctrl.language(c)), nil)
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags cart
// @Success 200 {object} response.StandardApiResponse{data=CartResponse}
// @Router /cart [delete]
func (ctrl *controller) ClearCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if err := ctrl.service.Clear(c.Request.Context(), sessionID); err != nil {
		ctrl.handleError(c, err)
		return
	}

	snap := ctrl.service.GetCart(sessionID)
	response.RespondJSON(c, "success", http.StatusOK, "Cart cleared", toCartResponse(snap, ctrl.language(c)), nil)
}

func (ctrl *controller) quantityOutOfRange(c *gin.Context, lowest int) {
	response.RespondJSON(c, "error", http.StatusBadRequest,
		fmt.Sprintf("Quantity must be between %d and %d", lowest, ctrl.maxQuantity), nil, nil)
}

func (ctrl *controller) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrItemNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Cart item not found", nil, nil)
	case errors.Is(err, catalog.ErrEventNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
	case errors.Is(err, ErrTicketTypeNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Ticket type not found", nil, nil)
	case errors.Is(err, ErrInvalidQuantity):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Quantity must be at least 1", nil, nil)
	case errors.Is(err, ErrCheckoutPending):
		response.RespondJSON(c, "error", http.StatusConflict, "Checkout in progress, cart is locked", nil, nil)
	default:
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update cart", nil, nil)
	}
}
