// ejournal/internal/access/menu.go

// Package access maps the active role to the menu items it may see.
// The mapping is static and evaluated on every request; switching roles
// simply changes the input.
package access

import "ejournal/models"

// Item is one entry of the sidebar menu.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Идентификаторы пунктов меню.
const (
	ItemDashboard     = "dashboard"
	ItemSchools       = "schools"
	ItemUsers         = "users"
	ItemClasses       = "classes"
	ItemSubjects      = "subjects"
	ItemSchedule      = "schedule"
	ItemGrades        = "grades"
	ItemHomework      = "homework"
	ItemAttendance    = "attendance"
	ItemNotifications = "notifications"
)

// Menu is the full sidebar in display order. VisibleItems never reorders it.
var Menu = []Item{
	{ID: ItemDashboard, Title: "Главная", Path: "/"},
	{ID: ItemSchools, Title: "Школы", Path: "/schools"},
	{ID: ItemUsers, Title: "Пользователи", Path: "/users"},
	{ID: ItemClasses, Title: "Классы", Path: "/classes"},
	{ID: ItemSubjects, Title: "Предметы", Path: "/subjects"},
	{ID: ItemSchedule, Title: "Расписание", Path: "/schedule"},
	{ID: ItemGrades, Title: "Оценки", Path: "/grades"},
	{ID: ItemHomework, Title: "Домашние задания", Path: "/homework"},
	{ID: ItemAttendance, Title: "Посещаемость", Path: "/attendance"},
	{ID: ItemNotifications, Title: "Уведомления", Path: "/notifications"},
}

// roleItems is the fixed role → visible-item mapping. An unknown or missing
// role falls back to the least-privileged set (student).
var roleItems = map[string]map[string]bool{
	models.RoleSuperAdmin: itemSet(
		ItemDashboard, ItemSchools, ItemUsers, ItemClasses, ItemSubjects,
		ItemSchedule, ItemGrades, ItemHomework, ItemAttendance, ItemNotifications,
	),
	models.RoleSchoolAdmin: itemSet(
		ItemDashboard, ItemUsers, ItemClasses, ItemSubjects,
		ItemSchedule, ItemGrades, ItemHomework, ItemAttendance, ItemNotifications,
	),
	models.RolePrincipal: itemSet(
		ItemDashboard, ItemClasses, ItemSchedule, ItemGrades,
		ItemAttendance, ItemNotifications,
	),
	models.RoleClassTeacher: itemSet(
		ItemDashboard, ItemSchedule, ItemGrades, ItemHomework,
		ItemAttendance, ItemNotifications,
	),
	models.RoleTeacher: itemSet(
		ItemDashboard, ItemSchedule, ItemGrades, ItemHomework,
		ItemAttendance, ItemNotifications,
	),
	models.RoleParent: itemSet(
		ItemDashboard, ItemSchedule, ItemGrades, ItemHomework,
		ItemAttendance, ItemNotifications,
	),
	models.RoleStudent: itemSet(
		ItemDashboard, ItemSchedule, ItemGrades, ItemHomework, ItemNotifications,
	),
}

func itemSet(ids ...string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// VisibleItems returns the subset of Menu the role may see, preserving menu
// order. Pure function: same role in, same ordered list out.
func VisibleItems(role string) []Item {
	allowed, ok := roleItems[role]
	if !ok {
		allowed = roleItems[models.RoleStudent]
	}

	visible := make([]Item, 0, len(Menu))
	for _, item := range Menu {
		if allowed[item.ID] {
			visible = append(visible, item)
		}
	}
	return visible
}

// CanSee reports whether the role's menu contains the item.
func CanSee(role, itemID string) bool {
	allowed, ok := roleItems[role]
	if !ok {
		allowed = roleItems[models.RoleStudent]
	}
	return allowed[itemID]
}
