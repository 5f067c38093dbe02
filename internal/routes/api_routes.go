// ejournal/internal/routes/api_routes.go

package routes

import (
	"github.com/gin-gonic/gin"

	"ejournal/internal/handlers"
	"ejournal/internal/middleware"
	"ejournal/models"
)

// registerAPIRoutes регистрирует маршруты, видимые только после входа.
// Суперадмин проходит любую проверку RequireRole.
func registerAPIRoutes(rg *gin.RouterGroup, s *handlers.Server) {
	api := rg.Group("/api")

	// Текущий пользователь: роли, переключение, пункты меню.
	api.GET("/my-roles", s.MyRoles)
	api.POST("/switch-role", s.SwitchRole)
	api.GET("/menu", s.Menu)

	// С пустым списком ролей пройдет только суперадмин.
	superOnly := middleware.RequireRole()
	adminOnly := middleware.RequireRole(models.RoleSchoolAdmin)
	teachers := middleware.RequireRole(models.RoleTeacher, models.RoleClassTeacher, models.RoleSchoolAdmin)

	schools := api.Group("/schools")
	{
		schools.GET("", s.ListSchools)
		schools.GET("/:id", s.GetSchool)
		schools.POST("", superOnly, s.CreateSchool)
		schools.PUT("/:id", superOnly, s.UpdateSchool)
		schools.DELETE("/:id", superOnly, s.DeleteSchool)
	}

	classes := api.Group("/classes")
	{
		classes.GET("", s.ListClasses)
		classes.GET("/:id", s.GetClass)
		classes.POST("", adminOnly, s.CreateClass)
		classes.PUT("/:id", adminOnly, s.UpdateClass)
		classes.DELETE("/:id", adminOnly, s.DeleteClass)
	}

	// Звонки (время уроков): настройки класса и школьные умолчания.
	classSlots := api.Group("/class/:classId/time-slots")
	{
		classSlots.GET("", s.ClassTimeSlots)
		classSlots.POST("", adminOnly, s.SetClassTimeSlot)
		classSlots.DELETE("/:slotNumber", adminOnly, s.DeleteClassTimeSlot)
	}

	subgroups := api.Group("/subgroups")
	{
		subgroups.GET("", s.ListSubgroups)
		subgroups.POST("", adminOnly, s.CreateSubgroup)
		subgroups.DELETE("/:id", adminOnly, s.DeleteSubgroup)
	}

	subjects := api.Group("/subjects")
	{
		subjects.GET("", s.ListSubjects)
		subjects.POST("", adminOnly, s.CreateSubject)
		subjects.PUT("/:id", adminOnly, s.UpdateSubject)
		subjects.DELETE("/:id", adminOnly, s.DeleteSubject)
	}

	users := api.Group("/users")
	{
		users.GET("", adminOnly, s.ListUsers)
		users.GET("/:id", adminOnly, s.GetUser)
		users.POST("", adminOnly, s.CreateUser)
		users.PUT("/:id", adminOnly, s.UpdateUser)
		users.DELETE("/:id", adminOnly, s.DeleteUser)
	}

	api.GET("/time-slots/defaults", s.DefaultTimeSlots)
	api.POST("/time-slots/defaults", adminOnly, s.SetDefaultTimeSlot)

	schedules := api.Group("/schedules")
	{
		schedules.GET("", s.ListSchedules)
		schedules.GET("/week", s.WeekSchedule)
		schedules.POST("", adminOnly, s.CreateSchedule)
		schedules.POST("/generate", adminOnly, s.GenerateSchedule)
		schedules.PATCH("/:id", adminOnly, s.UpdateSchedule)
		schedules.DELETE("/:id", adminOnly, s.DeleteSchedule)
	}

	grades := api.Group("/grades")
	{
		grades.GET("", s.ListGrades)
		grades.GET("/summary", s.GradeSummary)
		grades.GET("/export", teachers, s.ExportGrades)
		grades.POST("", teachers, s.CreateGrade)
		grades.PATCH("/:id", teachers, s.UpdateGrade)
		grades.DELETE("/:id", teachers, s.DeleteGrade)
	}

	attendance := api.Group("/attendance")
	{
		attendance.GET("", s.ListAttendance)
		attendance.GET("/summary", s.AttendanceSummary)
		attendance.POST("", teachers, s.MarkAttendance)
	}

	homework := api.Group("/homework")
	{
		homework.GET("", s.ListHomework)
		homework.POST("", teachers, s.CreateHomework)
		homework.PUT("/:id", teachers, s.UpdateHomework)
		homework.DELETE("/:id", teachers, s.DeleteHomework)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", s.ListNotifications)
		notifications.GET("/ws", s.NotificationsWS)
		notifications.POST("", teachers, s.CreateNotification)
		notifications.POST("/:id/read", s.MarkNotificationRead)
		notifications.DELETE("/:id", s.DeleteNotification)
	}
}
