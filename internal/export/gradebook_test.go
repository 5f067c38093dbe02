package export

import (
	"testing"

	"gorm.io/gorm"

	"ejournal/internal/journal"
	"ejournal/models"
)

func TestBuildGradeBook(t *testing.T) {
	students := []models.User{
		{Model: gorm.Model{ID: 1}, LastName: "Иванов", FirstName: "Иван"},
		{Model: gorm.Model{ID: 2}, LastName: "Петрова", FirstName: "Анна"},
	}
	grades := []models.Grade{
		{StudentID: 1, SubjectID: 5, Value: 4},
		{StudentID: 1, SubjectID: 5, Value: 5},
	}

	file, err := BuildGradeBook("Алгебра 10А", students, grades, journal.GradeFilter{})
	if err != nil {
		t.Fatal(err)
	}

	cell := func(ref string) string {
		v, err := file.GetCellValue("Алгебра 10А", ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", ref, err)
		}
		return v
	}

	if cell("A1") != "Ученик" || cell("D1") != "Средний балл" {
		t.Errorf("header row wrong: %q %q", cell("A1"), cell("D1"))
	}
	if cell("A2") != "Иванов Иван" || cell("B2") != "4 5" || cell("D2") != "4.5" {
		t.Errorf("student row wrong: %q %q %q", cell("A2"), cell("B2"), cell("D2"))
	}
	// Ученица без оценок получает прочерк, не ноль.
	if cell("D3") != journal.Dash {
		t.Errorf("empty average = %q, want dash", cell("D3"))
	}
}

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ"}
	for n, want := range cases {
		if got := colName(n); got != want {
			t.Errorf("colName(%d) = %q, want %q", n, got, want)
		}
	}
}
