// ejournal/models/attendance.go

package models

import "time"

// Статусы посещаемости. Отсутствие записи трактуется как "присутствовал" —
// это осознанное бизнес-правило, а не пропуск (см. journal.IsPresent).
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// Attendance is at most one record per (student, lesson) pair.
type Attendance struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StudentID  uint      `json:"studentId" gorm:"not null;uniqueIndex:idx_attendance"`
	ScheduleID uint      `json:"scheduleId" gorm:"not null;uniqueIndex:idx_attendance"`
	Status     string    `json:"status" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// AttendanceInput binds a mark-attendance request.
type AttendanceInput struct {
	StudentID  uint   `json:"studentId" binding:"required"`
	ScheduleID uint   `json:"scheduleId" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=present absent"`
}
