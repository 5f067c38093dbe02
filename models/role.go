// ejournal/models/role.go

package models

import "gorm.io/gorm"

// Роли пользователей. Хранятся строками, а не отдельной таблицей:
// набор фиксирован и меняется только вместе с кодом.
const (
	RoleSuperAdmin   = "superadmin"
	RoleSchoolAdmin  = "school_admin"
	RoleTeacher      = "teacher"
	RoleStudent      = "student"
	RoleParent       = "parent"
	RolePrincipal    = "principal"
	RoleClassTeacher = "class_teacher"
)

// KnownRoles lists every role the system accepts, in privilege order.
var KnownRoles = []string{
	RoleSuperAdmin,
	RoleSchoolAdmin,
	RolePrincipal,
	RoleClassTeacher,
	RoleTeacher,
	RoleParent,
	RoleStudent,
}

// IsKnownRole reports whether name is one of the fixed role constants.
func IsKnownRole(name string) bool {
	for _, r := range KnownRoles {
		if r == name {
			return true
		}
	}
	return false
}

// UserRole is a single role assignment. A user has 0..N assignments;
// the switch-role operation keeps exactly one of them active.
type UserRole struct {
	gorm.Model
	UserID    uint   `json:"userId" gorm:"not null;index"`
	Role      string `json:"role" gorm:"not null"`
	SchoolID  *uint  `json:"schoolId"`
	ClassID   *uint  `json:"classId"` // для student и class_teacher
	IsActive  bool   `json:"isActive" gorm:"default:false"`
	IsDefault bool   `json:"isDefault" gorm:"default:false"`

	School *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
}
