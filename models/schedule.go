// ejournal/models/schedule.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы проведения урока.
const (
	LessonNotConducted = "not_conducted"
	LessonConducted    = "conducted"
	LessonCancelled    = "cancelled"
)

// Schedule is one lesson occurrence: either recurring weekly (DayOfWeek)
// or pinned to a concrete calendar date (ScheduleDate). When both are set,
// the date wins and DayOfWeek is ignored.
type Schedule struct {
	gorm.Model
	ClassID      uint       `json:"classId" gorm:"not null;index"`
	SubjectID    uint       `json:"subjectId" gorm:"not null;index"`
	TeacherID    uint       `json:"teacherId" gorm:"not null;index"`
	DayOfWeek    int        `json:"dayOfWeek"` // 1=понедельник .. 7=воскресенье
	ScheduleDate *time.Time `json:"scheduleDate"`
	StartTime    string     `json:"startTime" gorm:"size:5;not null"` // "HH:MM"
	EndTime      string     `json:"endTime" gorm:"size:5;not null"`
	Room         string     `json:"room"`
	SubgroupID   *uint      `json:"subgroupId"`
	Status       string     `json:"status" gorm:"default:not_conducted"`

	Class    *Class    `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Subject  *Subject  `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher  *User     `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Subgroup *Subgroup `json:"subgroup,omitempty" gorm:"foreignKey:SubgroupID"`
}

// ScheduleInput binds a create/update request. ScheduleDate is "YYYY-MM-DD"
// and optional; DayOfWeek is required so a recurring row always exists even
// when a concrete date pins the lesson.
type ScheduleInput struct {
	ClassID      uint   `json:"classId" binding:"required"`
	SubjectID    uint   `json:"subjectId" binding:"required"`
	TeacherID    uint   `json:"teacherId" binding:"required"`
	DayOfWeek    int    `json:"dayOfWeek" binding:"required,min=1,max=7"`
	ScheduleDate string `json:"scheduleDate"`
	StartTime    string `json:"startTime" binding:"required"`
	EndTime      string `json:"endTime" binding:"required"`
	Room         string `json:"room"`
	SubgroupID   *uint  `json:"subgroupId"`
}
