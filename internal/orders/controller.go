package orders

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/shared/middleware"
	"tvojakarta/internal/shared/utils/response"
	"tvojakarta/pkg/logger"
)

type Controller interface {
	ListOrders(c *gin.Context)
	GetOrder(c *gin.Context)
}

type controller struct {
	service  Service
	resolver catalog.LanguageResolver
	log      *logger.Logger
}

func NewController(service Service, resolver catalog.LanguageResolver) Controller {
	if resolver == nil {
		resolver = catalog.DefaultLanguageResolver
	}
	return &controller{service: service, resolver: resolver, log: logger.GetDefault()}
}

func (ctrl *controller) language(c *gin.Context) catalog.Language {
	if lang, ok := catalog.ParseLanguage(c.Query("lang")); ok {
		return lang
	}
	return ctrl.resolver(c)
}

// ListOrders godoc
// @Summary Orders placed by the current session, newest first
// @Tags orders
// @Param lang query string false "sr or en"
// @Param limit query int false "Maximum orders returned"
// @Success 200 {object} response.StandardApiResponse{data=OrderListResponse}
// @Router /orders [get]
func (ctrl *controller) ListOrders(c *gin.Context) {
	var q OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	orders, err := ctrl.service.ListBySession(c.Request.Context(), middleware.GetSessionID(c), q.Limit)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	lang := ctrl.language(c)
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o, lang)
	}
	response.RespondJSON(c, "success", http.StatusOK, "Orders retrieved successfully", OrderListResponse{
		Orders: out,
		Total:  len(out),
	}, nil)
}

// GetOrder godoc
// @Summary Order by number
// @Tags orders
// @Param number path string true "Order number, e.g. TK-2025-123456"
// @Success 200 {object} response.StandardApiResponse{data=OrderResponse}
// @Failure 404 {object} response.StandardApiResponse
// @Router /orders/{number} [get]
func (ctrl *controller) GetOrder(c *gin.Context) {
	order, err := ctrl.service.GetByNumber(c.Request.Context(), middleware.GetSessionID(c), c.Param("number"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Order retrieved successfully", ToOrderResponse(*order, ctrl.language(c)), nil)
}

func (ctrl *controller) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Order not found", nil, nil)
	default:
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve orders", nil, nil)
	}
}
