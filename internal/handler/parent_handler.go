package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/srms-api/internal/service"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
	"github.com/campusworks/srms-api/pkg/response"
)

// ParentHandler exposes the parent dashboard and fee payment.
type ParentHandler struct {
	aggregation *service.AggregationService
	payments    *service.PaymentService
	metrics     *service.MetricsService
}

// NewParentHandler constructs ParentHandler.
func NewParentHandler(aggregation *service.AggregationService, payments *service.PaymentService, metrics *service.MetricsService) *ParentHandler {
	return &ParentHandler{aggregation: aggregation, payments: payments, metrics: metrics}
}

// ChildProfile returns the joined view for the child registered under the
// parent's phone number.
func (h *ParentHandler) ChildProfile(c *gin.Context) {
	view, err := h.aggregation.ParentView(c.Request.Context(), c.Param("phone"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// RecordPayment records a fee payment and returns the receipt.
func (h *ParentHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	receipt, err := h.payments.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CountPayment()
	}
	response.JSON(c, http.StatusOK, receipt)
}
