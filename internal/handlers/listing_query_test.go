// ejournal/internal/handlers/listing_query_test.go

package handlers

import (
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ejournal/models"
)

// dryRunDB строит SQL без подключения к Postgres: драйвер открывает
// соединение лениво, а dry-run не выполняет ни одного запроса.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		postgres.New(postgres.Config{DSN: "host=localhost user=ejournal dbname=ejournal"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true},
	)
	if err != nil {
		t.Fatalf("dry-run база: %v", err)
	}
	return db
}

func uintPtr(v uint) *uint { return &v }

// totalRows обязан считаться с теми же фильтрами, что и страница, иначе
// totalPages в конверте врет на каждом отфильтрованном списке.
func TestHomeworkCountCarriesFilters(t *testing.T) {
	db := dryRunDB(t)

	var n int64
	stmt := db.Model(&models.Homework{}).
		Scopes(homeworkFilters(uintPtr(5), uintPtr(9))).
		Count(&n).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "class_id = $1") || !strings.Contains(sql, "subject_id = $2") {
		t.Fatalf("подсчет без фильтров класса/предмета: %s", sql)
	}
	if len(stmt.Vars) != 2 || stmt.Vars[0] != uint(5) || stmt.Vars[1] != uint(9) {
		t.Fatalf("неожиданные параметры: %v", stmt.Vars)
	}
}

func TestHomeworkFiltersOptional(t *testing.T) {
	db := dryRunDB(t)

	var n int64
	stmt := db.Model(&models.Homework{}).
		Scopes(homeworkFilters(nil, nil)).
		Count(&n).Statement

	// WHERE остается из-за soft delete, но наших условий быть не должно.
	sql := stmt.SQL.String()
	if strings.Contains(sql, "class_id") || strings.Contains(sql, "subject_id") {
		t.Fatalf("без параметров запроса фильтров быть не должно: %s", sql)
	}
	if len(stmt.Vars) != 0 {
		t.Fatalf("неожиданные параметры: %v", stmt.Vars)
	}
}

func TestUserCountCarriesRoleAndClassJoins(t *testing.T) {
	db := dryRunDB(t)

	var n int64
	stmt := db.Model(&models.User{}).
		Scopes(userFilters(models.RoleStudent, uintPtr(3))).
		Count(&n).Statement

	sql := stmt.SQL.String()
	for _, fragment := range []string{
		"JOIN user_roles ON user_roles.user_id = users.id",
		"user_roles.role = $1",
		"JOIN user_roles r2 ON r2.user_id = users.id",
		"r2.class_id = $2",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("в подсчете нет %q: %s", fragment, sql)
		}
	}
}

func TestNotificationCountRespectsUnread(t *testing.T) {
	db := dryRunDB(t)

	var n int64
	stmt := db.Model(&models.Notification{}).
		Scopes(notificationFilters(7, true)).
		Count(&n).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "user_id = $1") {
		t.Fatalf("подсчет не ограничен адресатом: %s", sql)
	}
	if !strings.Contains(sql, "is_read = false") {
		t.Fatalf("unread=true не дошел до подсчета: %s", sql)
	}

	stmt = db.Model(&models.Notification{}).
		Scopes(notificationFilters(7, false)).
		Count(&n).Statement
	if sql := stmt.SQL.String(); strings.Contains(sql, "is_read") {
		t.Fatalf("без unread фильтра по is_read быть не должно: %s", sql)
	}
}

// Без schoolId активируется самое раннее назначение, а не случайное.
func TestSwitchTargetQueryOrdersByID(t *testing.T) {
	db := dryRunDB(t)

	var target models.UserRole
	stmt := switchTargetQuery(db, 42, switchRoleInput{Role: models.RoleTeacher}).
		First(&target).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "ORDER BY id") {
		t.Fatalf("выбор назначения не упорядочен: %s", sql)
	}
	if stmt.Vars[0] != uint(42) || stmt.Vars[1] != models.RoleTeacher {
		t.Fatalf("неожиданные параметры: %v", stmt.Vars)
	}
}

func TestSwitchTargetQuerySchoolFilter(t *testing.T) {
	db := dryRunDB(t)

	var target models.UserRole
	stmt := switchTargetQuery(db, 42, switchRoleInput{Role: models.RoleTeacher, SchoolID: uintPtr(11)}).
		First(&target).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "school_id = $3") {
		t.Fatalf("schoolId не попал в выбор назначения: %s", sql)
	}
}
