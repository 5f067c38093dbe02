// ejournal/models/grade.go

package models

import "time"

// Типы оценок.
const (
	GradeClasswork    = "classwork"
	GradeHomework     = "homework"
	GradeTest         = "test"
	GradeExam         = "exam"
	GradeProject      = "project"
	GradeQuarterFinal = "quarter_final"
)

// Grade is a single mark on the 1..5 scale. Immutable once created except
// by an explicit edit; contributes to the per-student arithmetic mean.
type Grade struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StudentID  uint      `json:"studentId" gorm:"not null;index"`
	SubjectID  uint      `json:"subjectId" gorm:"not null;index"`
	ScheduleID *uint     `json:"scheduleId"`
	Value      int       `json:"grade" gorm:"column:grade;not null"`
	GradeType  string    `json:"gradeType" gorm:"not null"`
	Comment    *string   `json:"comment"`
	TeacherID  uint      `json:"teacherId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`

	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

// GradeInput binds a grade create/update request; the 1..5 scale is
// enforced at the API boundary.
type GradeInput struct {
	StudentID  uint    `json:"studentId" binding:"required"`
	SubjectID  uint    `json:"subjectId" binding:"required"`
	ScheduleID *uint   `json:"scheduleId"`
	Value      int     `json:"grade" binding:"required,min=1,max=5"`
	GradeType  string  `json:"gradeType" binding:"required,oneof=classwork homework test exam project quarter_final"`
	Comment    *string `json:"comment"`
}
