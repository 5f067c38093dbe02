package access

import (
	"reflect"
	"testing"

	"ejournal/models"
)

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func menuIndex(id string) int {
	for i, it := range Menu {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func TestVisibleItemsPreservesMenuOrder(t *testing.T) {
	for _, role := range models.KnownRoles {
		items := VisibleItems(role)
		prev := -1
		for _, it := range items {
			idx := menuIndex(it.ID)
			if idx < 0 {
				t.Fatalf("role %s: item %s is not in the menu", role, it.ID)
			}
			if idx <= prev {
				t.Fatalf("role %s: items out of menu order: %v", role, ids(items))
			}
			prev = idx
		}
	}
}

func TestVisibleItemsIdempotent(t *testing.T) {
	first := VisibleItems(models.RoleTeacher)
	second := VisibleItems(models.RoleTeacher)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs differ: %v vs %v", ids(first), ids(second))
	}
}

func TestSwitchRoleAndBackRestoresList(t *testing.T) {
	before := VisibleItems(models.RoleTeacher)
	_ = VisibleItems(models.RoleParent)
	after := VisibleItems(models.RoleTeacher)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("teacher list changed after visiting parent: %v vs %v", ids(before), ids(after))
	}
}

func TestUnknownRoleGetsStudentSet(t *testing.T) {
	student := VisibleItems(models.RoleStudent)
	unknown := VisibleItems("janitor")
	empty := VisibleItems("")
	if !reflect.DeepEqual(student, unknown) || !reflect.DeepEqual(student, empty) {
		t.Fatalf("unknown role must see the student menu: %v vs %v", ids(student), ids(unknown))
	}
}

func TestPrivilegeBoundaries(t *testing.T) {
	if !CanSee(models.RoleSuperAdmin, ItemSchools) {
		t.Error("superadmin must see schools")
	}
	if CanSee(models.RoleSchoolAdmin, ItemSchools) {
		t.Error("school admin manages one school, not the school list")
	}
	if CanSee(models.RoleStudent, ItemAttendance) {
		t.Error("student does not get the attendance journal")
	}
	if !CanSee(models.RoleParent, ItemAttendance) {
		t.Error("parent sees the child's attendance")
	}
	if CanSee("", ItemUsers) {
		t.Error("missing role must not see user administration")
	}
}
