// ejournal/models/school.go

package models

import "gorm.io/gorm"

// School представляет учебное заведение.
type School struct {
	gorm.Model
	Name    string `json:"name" gorm:"unique;not null"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
