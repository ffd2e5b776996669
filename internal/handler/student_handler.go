package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/srms-api/internal/service"
	"github.com/campusworks/srms-api/pkg/response"
)

// StudentHandler exposes the student dashboard.
type StudentHandler struct {
	aggregation *service.AggregationService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(aggregation *service.AggregationService) *StudentHandler {
	return &StudentHandler{aggregation: aggregation}
}

// Profile returns the joined view for one student ID.
func (h *StudentHandler) Profile(c *gin.Context) {
	view, err := h.aggregation.StudentView(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
