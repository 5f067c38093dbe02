// ejournal/models/user.go

package models

import "gorm.io/gorm"

// User represents an account in the journal. One account can carry several
// role assignments (teacher in one school, parent in another); the active
// assignment governs what the user sees.
type User struct {
	gorm.Model
	Login      string `json:"login" gorm:"unique;not null"`
	Password   string `json:"-" gorm:"not null"`
	Email      string `json:"email" gorm:"unique"`
	LastName   string `json:"lastName" gorm:"not null"`
	FirstName  string `json:"firstName" gorm:"not null"`
	MiddleName string `json:"middleName"`
	Phone      string `json:"phone"`
	PhotoURL   string `json:"photoUrl"`

	Roles []UserRole `json:"roles,omitempty" gorm:"foreignKey:UserID"`
}
