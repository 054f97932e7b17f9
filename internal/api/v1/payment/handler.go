package payment

import (
	"errors"
	"fmt"
	"net/http"

	"payments-backend/internal/database"
	"payments-backend/internal/middleware"
	"payments-backend/internal/services"
	"payments-backend/internal/utils"
	"payments-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service   *services.PaymentService
	validator *utils.PaymentValidator
}

func NewHandler(service *services.PaymentService, validator *utils.PaymentValidator) *Handler {
	return &Handler{service: service, validator: validator}
}

// CreatePayment godoc
// @Summary Create a payment
// @Description Validates the body and records a PENDING payment
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body utils.PaymentRequest true "Payment request"
// @Success 201 {object} models.Payment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.AbortWithError(c, utils.CodeBadRequest, "",
				fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return
		}
		h.internalError(c, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	req, err := h.validator.Validate(body)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.AbortWithError(c, verr.Code, "", verr.Detail)
			return
		}
		h.internalError(c, err)
		return
	}

	payment, err := h.service.CreatePayment(c.Request.Context(), req)
	if err != nil {
		h.internalError(c, err)
		return
	}

	logger.Log.Info("Payment created",
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("payment_id", payment.PaymentID),
	)
	c.JSON(http.StatusCreated, payment)
}

// GetPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /payments/{paymentId} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	payment, err := h.service.GetPayment(c.Request.Context(), c.Param("paymentId"))
	if err != nil {
		if errors.Is(err, database.ErrPaymentNotFound) {
			utils.AbortWithError(c, utils.CodeNotFound, "Payment not found", "")
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// internalError records err for the request log and answers with a
// generic INTERNAL_ERROR.
func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.AbortWithError(c, utils.CodeInternalError, "", "")
}
