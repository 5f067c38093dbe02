// ejournal/models/timeslot.go

package models

import "gorm.io/gorm"

// LessonSlot maps a lesson slot number (0 = нулевой урок, 1 = первый и т.д.)
// to its start and end time. ClassID nil means the school-wide default table;
// a class-specific row overrides the default for the same slot number.
type LessonSlot struct {
	gorm.Model
	SchoolID   uint   `json:"schoolId" gorm:"not null;index:idx_slot,unique"`
	ClassID    *uint  `json:"classId" gorm:"index:idx_slot,unique"`
	SlotNumber int    `json:"slotNumber" gorm:"not null;index:idx_slot,unique"`
	StartTime  string `json:"startTime" gorm:"size:5;not null"` // "HH:MM"
	EndTime    string `json:"endTime" gorm:"size:5;not null"`
}

// LessonSlotInput binds a slot create/replace request.
type LessonSlotInput struct {
	SlotNumber *int   `json:"slotNumber" binding:"required,min=0"`
	StartTime  string `json:"startTime" binding:"required"`
	EndTime    string `json:"endTime" binding:"required"`
}
