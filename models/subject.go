// ejournal/models/subject.go

package models

import "gorm.io/gorm"

// Subject представляет модель учебного предмета.
type Subject struct {
	gorm.Model
	SchoolID uint   `json:"schoolId" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`
}
