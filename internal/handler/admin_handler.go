package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/srms-api/internal/service"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
	"github.com/campusworks/srms-api/pkg/response"
)

// AdminHandler exposes the administration endpoints: student and teacher
// management plus the aggregated roster views.
type AdminHandler struct {
	students    *service.StudentService
	teachers    *service.TeacherService
	aggregation *service.AggregationService
	payments    *service.PaymentService
	exports     *service.ExportService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(students *service.StudentService, teachers *service.TeacherService, aggregation *service.AggregationService, payments *service.PaymentService, exports *service.ExportService) *AdminHandler {
	return &AdminHandler{
		students:    students,
		teachers:    teachers,
		aggregation: aggregation,
		payments:    payments,
		exports:     exports,
	}
}

// AddStudent registers a new student.
func (h *AdminHandler) AddStudent(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// EditStudent merges arbitrary fields into a student record. The primary
// key and credential are protected in the service.
func (h *AdminHandler) EditStudent(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	if err := h.students.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "student updated successfully"})
}

// DeleteStudent removes a student record.
func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}

// AddTeacher registers a new teacher.
func (h *AdminHandler) AddTeacher(c *gin.Context) {
	var req service.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	teacher, err := h.teachers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// EditTeacher merges fields into a teacher record.
func (h *AdminHandler) EditTeacher(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	if err := h.teachers.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "teacher updated successfully"})
}

// DeleteTeacher removes a teacher record.
func (h *AdminHandler) DeleteTeacher(c *gin.Context) {
	if err := h.teachers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "teacher deleted successfully"})
}

// ListStudents returns every student with derived attendance, marks and fee
// figures.
func (h *AdminHandler) ListStudents(c *gin.Context) {
	summaries, err := h.aggregation.AdminStudentsView(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries)
}

// ListTeachers returns every teacher without credentials.
func (h *AdminHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teachers.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers)
}

// ListPayments returns the full payment ledger.
func (h *AdminHandler) ListPayments(c *gin.Context) {
	payments, err := h.payments.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// ExportStudents streams the roster as CSV or PDF.
func (h *AdminHandler) ExportStudents(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	data, contentType, err := h.exports.StudentsSummary(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=students.%s", format))
	c.Data(http.StatusOK, contentType, data)
}
