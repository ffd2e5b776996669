package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/service"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
	"github.com/campusworks/srms-api/pkg/response"
)

// TeacherHandler exposes the teacher-facing endpoints: attendance, marks
// and class rosters.
type TeacherHandler struct {
	attendance *service.AttendanceService
	marks      *service.MarkService
	students   *service.StudentService
}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler(attendance *service.AttendanceService, marks *service.MarkService, students *service.StudentService) *TeacherHandler {
	return &TeacherHandler{attendance: attendance, marks: marks, students: students}
}

// MarkAttendance records one attendance entry.
func (h *TeacherHandler) MarkAttendance(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	if err := h.attendance.Mark(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "attendance marked successfully"})
}

type bulkAttendanceRequest struct {
	Date       string                        `json:"date"`
	Attendance []service.BulkAttendanceEntry `json:"attendance"`
}

// BulkAttendance records attendance for many students on one date.
func (h *TeacherHandler) BulkAttendance(c *gin.Context) {
	var req bulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	recorded, err := h.attendance.BulkMark(c.Request.Context(), req.Date, req.Attendance)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "bulk attendance marked successfully", "recorded": recorded})
}

// AddMarks records one exam score.
func (h *TeacherHandler) AddMarks(c *gin.Context) {
	var req service.AddMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	if err := h.marks.Add(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "marks added successfully"})
}

// ListStudents returns students filtered by year, branch and section.
func (h *TeacherHandler) ListStudents(c *gin.Context) {
	filter := models.StudentFilter{
		Year:    c.Query("year"),
		Branch:  c.Query("branch"),
		Section: c.Query("section"),
	}

	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// StudentAttendance returns one student's attendance log with stats.
func (h *TeacherHandler) StudentAttendance(c *gin.Context) {
	summary, err := h.attendance.ForStudent(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
