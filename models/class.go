// ejournal/models/class.go

package models

import "gorm.io/gorm"

// Class представляет учебный класс (например, "10А").
type Class struct {
	gorm.Model
	SchoolID    uint   `json:"schoolId" gorm:"not null;index"`
	GradeNumber int    `json:"gradeNumber" gorm:"not null"`
	Liter       string `json:"liter" gorm:"size:3"`

	School    *School    `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Subgroups []Subgroup `json:"subgroups,omitempty" gorm:"foreignKey:ClassID"`
}

// ClassInput используется для привязки данных из JSON-запроса
// при создании или обновлении класса.
type ClassInput struct {
	SchoolID    uint   `json:"schoolId" binding:"required"`
	GradeNumber int    `json:"gradeNumber" binding:"required,min=0,max=11"`
	Liter       string `json:"liter"`
}

// Subgroup is a subdivision of a class with its own roster, used for
// lessons like language electives.
type Subgroup struct {
	gorm.Model
	ClassID uint   `json:"classId" gorm:"not null;index"`
	Name    string `json:"name" gorm:"not null"`

	Students []User `json:"students,omitempty" gorm:"many2many:subgroup_students;"`
}
