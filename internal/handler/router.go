package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campusworks/srms-api/internal/middleware"
	"github.com/campusworks/srms-api/internal/service"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth    *AuthHandler
	Admin   *AdminHandler
	Teacher *TeacherHandler
	Student *StudentHandler
	Parent  *ParentHandler
	Metrics *service.MetricsService
	AuthSvc *service.AuthService
}

// Register wires all routes onto the engine under the given prefix.
func Register(r *gin.Engine, prefix string, h Handlers) {
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	api := r.Group(prefix)

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.PUT("/change-password",
		middleware.JWT(h.AuthSvc),
		middleware.RequireRoles(service.RoleStudent, service.RoleTeacher),
		h.Auth.ChangePassword)

	admin := api.Group("/admin",
		middleware.JWT(h.AuthSvc),
		middleware.RequireRoles(service.RoleAdmin))
	admin.POST("/students", h.Admin.AddStudent)
	admin.GET("/students", h.Admin.ListStudents)
	admin.GET("/students/export", h.Admin.ExportStudents)
	admin.PUT("/students/:id", h.Admin.EditStudent)
	admin.DELETE("/students/:id", h.Admin.DeleteStudent)
	admin.POST("/teachers", h.Admin.AddTeacher)
	admin.GET("/teachers", h.Admin.ListTeachers)
	admin.PUT("/teachers/:id", h.Admin.EditTeacher)
	admin.DELETE("/teachers/:id", h.Admin.DeleteTeacher)
	admin.GET("/payments", h.Admin.ListPayments)

	teacher := api.Group("/teacher",
		middleware.JWT(h.AuthSvc),
		middleware.RequireRoles(service.RoleTeacher, service.RoleAdmin))
	teacher.POST("/attendance", h.Teacher.MarkAttendance)
	teacher.POST("/attendance/bulk", h.Teacher.BulkAttendance)
	teacher.POST("/marks", h.Teacher.AddMarks)
	teacher.GET("/students", h.Teacher.ListStudents)
	teacher.GET("/attendance/:studentId", h.Teacher.StudentAttendance)

	student := api.Group("/student",
		middleware.JWT(h.AuthSvc),
		middleware.RequireRoles(service.RoleStudent, service.RoleAdmin))
	student.GET("/:id", h.Student.Profile)

	parent := api.Group("/parent",
		middleware.JWT(h.AuthSvc),
		middleware.RequireRoles(service.RoleParent, service.RoleAdmin))
	parent.GET("/:phone", h.Parent.ChildProfile)
	parent.POST("/payment", h.Parent.RecordPayment)
}
