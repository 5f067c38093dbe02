// ejournal/internal/handlers/attendance_handler.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ejournal/internal/journal"
	"ejournal/models"
)

// ListAttendance returns the explicit attendance records of a lesson.
// Students without a record are present — клиент применяет то же правило,
// что и AttendanceSummary.
func (s *Server) ListAttendance(c *gin.Context) {
	scheduleID, ok := queryUint(c, "scheduleId")
	if !ok {
		return
	}
	if scheduleID == nil {
		fail(c, http.StatusBadRequest, "Укажите scheduleId")
		return
	}

	var records []models.Attendance
	if err := s.DB.Where("schedule_id = ?", *scheduleID).Find(&records).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if records == nil {
		records = make([]models.Attendance, 0)
	}
	c.JSON(http.StatusOK, records)
}

// MarkAttendance upserts the record for (studentId, scheduleId): at most
// one record per pair.
func (s *Server) MarkAttendance(c *gin.Context) {
	var input models.AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные посещаемости: "+err.Error())
		return
	}

	var record models.Attendance
	err := s.DB.Where("student_id = ? AND schedule_id = ?", input.StudentID, input.ScheduleID).
		First(&record).Error
	switch {
	case err == nil:
		record.Status = input.Status
		if err := s.DB.Save(&record).Error; err != nil {
			s.dbError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, record)
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.Attendance{
			StudentID:  input.StudentID,
			ScheduleID: input.ScheduleID,
			Status:     input.Status,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			s.dbError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, record)
	default:
		s.dbError(c, err, "")
	}
}

type attendanceRow struct {
	StudentID uint   `json:"studentId"`
	FullName  string `json:"fullName"`
	Present   bool   `json:"present"`
}

// AttendanceSummary returns the roster of the lesson's class with a present
// flag per student. No record means present.
func (s *Server) AttendanceSummary(c *gin.Context) {
	scheduleID, ok := queryUint(c, "scheduleId")
	if !ok {
		return
	}
	if scheduleID == nil {
		fail(c, http.StatusBadRequest, "Укажите scheduleId")
		return
	}

	var lesson models.Schedule
	if err := s.DB.First(&lesson, *scheduleID).Error; err != nil {
		s.dbError(c, err, "Урок не найден")
		return
	}

	var students []models.User
	err := s.DB.Joins("JOIN user_roles ON user_roles.user_id = users.id AND user_roles.deleted_at IS NULL").
		Where("user_roles.role = ? AND user_roles.class_id = ?", models.RoleStudent, lesson.ClassID).
		Order("users.last_name, users.first_name").
		Find(&students).Error
	if err != nil {
		s.dbError(c, err, "")
		return
	}

	var records []models.Attendance
	if err := s.DB.Where("schedule_id = ?", *scheduleID).Find(&records).Error; err != nil {
		s.dbError(c, err, "")
		return
	}

	rows := make([]attendanceRow, 0, len(students))
	for _, st := range students {
		rows = append(rows, attendanceRow{
			StudentID: st.ID,
			FullName:  journal.FullName(st),
			Present:   journal.IsPresent(st.ID, *scheduleID, records),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"scheduleId": *scheduleID,
		"students":   rows,
	})
}
