// ejournal/models/homework.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Homework представляет домашнее задание, привязанное к уроку.
type Homework struct {
	gorm.Model
	ClassID    uint       `json:"classId" gorm:"not null;index"`
	SubjectID  uint       `json:"subjectId" gorm:"not null;index"`
	ScheduleID *uint      `json:"scheduleId"`
	TeacherID  uint       `json:"teacherId"`
	Title      string     `json:"title" gorm:"not null"`
	Content    string     `json:"content"`
	DueDate    *time.Time `json:"dueDate"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

// HomeworkInput binds a homework create/update request. DueDate is "YYYY-MM-DD".
type HomeworkInput struct {
	ClassID    uint   `json:"classId" binding:"required"`
	SubjectID  uint   `json:"subjectId" binding:"required"`
	ScheduleID *uint  `json:"scheduleId"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	DueDate    string `json:"dueDate"`
}
