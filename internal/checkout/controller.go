package checkout

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
	Submit(c *gin.Context)
	GetStatus(c *gin.Context)
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

// Submit godoc
// @Summary Pay for the current cart
// @Description Validates billing and card fields, locks the cart and starts the payment. Poll /checkout/status for the outcome.
// @Tags checkout
// @Param body body PaymentForm true "Billing and card details"
// @Success 202 {object} response.StandardApiResponse{data=SubmitResponse}
// @Failure 400 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Failure 422 {object} response.StandardApiResponse{errors=ValidationError}
// @Router /checkout [post]
func (ctrl *controller) Submit(c *gin.Context) {
	lang := ctrl.language(c)

	var form PaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	status, err := ctrl.service.Submit(c.Request.Context(), middleware.GetSessionID(c), form, lang)
	if err != nil {
		ctrl.handleError(c, err, lang)
		return
	}

	response.RespondJSON(c, "success", http.StatusAccepted, status.Message, SubmitResponse{
		Status:    status,
		StatusURL: c.FullPath() + "/status",
	}, nil)
}

// GetStatus godoc
// @Summary Checkout state of the current session
// @Tags checkout
// @Success 200 {object} response.StandardApiResponse{data=Status}
// @Router /checkout/status [get]
func (ctrl *controller) GetStatus(c *gin.Context) {
	status := ctrl.service.Status(middleware.GetSessionID(c), ctrl.language(c))
	response.RespondJSON(c, "success", http.StatusOK, "Checkout status retrieved successfully", status, nil)
}

func (ctrl *controller) handleError(c *gin.Context, err error, lang catalog.Language) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, verr.Message, nil, verr)
	case errors.Is(err, ErrCheckoutInProgress):
		response.RespondJSON(c, "error", http.StatusConflict, Message(CodeProcessing, lang), nil, nil)
	case errors.Is(err, ErrEmptyCart):
		response.RespondJSON(c, "error", http.StatusBadRequest, Message(CodeEmptyCart, lang), nil, nil)
	default:
		ctrl.log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondJSON(c, "error", http.StatusInternalServerError, Message(CodePayment, lang), nil, nil)
	}
}
