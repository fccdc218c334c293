package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dokanly/posledger/internal/core/ports/services"
	"github.com/dokanly/posledger/internal/dto"
	"github.com/dokanly/posledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("/:id", h.getPayment)
		payments.PUT("/:id", h.updatePayment)
		payments.DELETE("/:id", h.deletePayment)
	}
}

// createPayment godoc
// @Summary Record a payment
// @Description Records a payment; a COMPLETED payment linked to an account adjusts its balance atomically
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Parent transaction or account not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, tc, ok := requireIdentity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), tc, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	paymentType, err := h.paymentService.ClassifyPayment(c.Request.Context(), tc, *payment)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to classify payment")
		return
	}

	logger.Info("Payment recorded successfully", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, paymentType))
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Retrieves a payment with its derived classification
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	_, tc, ok := requireIdentity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), tc, paymentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve payment")
		return
	}

	paymentType, err := h.paymentService.ClassifyPayment(c.Request.Context(), tc, *payment)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to classify payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, paymentType))
}

// updatePayment godoc
// @Summary Edit a payment
// @Description Edits a payment's amount, status, method or reference and reconciles the account balance
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path string true "Payment ID"
// @Param   payment body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to update payment"
// @Security BearerAuth
// @Router /payments/{id} [put]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, tc, ok := requireIdentity(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), tc, paymentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update payment")
		return
	}

	paymentType, err := h.paymentService.ClassifyPayment(c.Request.Context(), tc, *payment)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to classify payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, paymentType))
}

// deletePayment godoc
// @Summary Delete a payment
// @Description Deletes a payment, reversing its effect on the account balance
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 204 "Payment deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to delete payment"
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	userID, tc, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), tc, paymentID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete payment")
		return
	}

	c.Status(http.StatusNoContent)
}
