package journal

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"ejournal/models"
)

func ptrUint(v uint) *uint { return &v }

func TestAverageGradeExactMean(t *testing.T) {
	records := []models.Grade{
		{StudentID: 1, SubjectID: 2, Value: 4},
		{StudentID: 1, SubjectID: 2, Value: 5},
		{StudentID: 1, SubjectID: 2, Value: 3},
		{StudentID: 9, SubjectID: 2, Value: 2}, // чужая оценка
	}

	avg, ok := AverageGrade(1, records, GradeFilter{})
	if !ok {
		t.Fatal("expected a defined average")
	}
	if avg != 4.0 {
		t.Errorf("average = %v, want 4.0", avg)
	}
	if s := FormatAverage(avg, ok); s != "4.0" {
		t.Errorf("FormatAverage = %q, want \"4.0\"", s)
	}
}

func TestAverageGradeEmptyShowsDash(t *testing.T) {
	avg, ok := AverageGrade(1, nil, GradeFilter{})
	if ok {
		t.Fatal("empty selection must not produce an average")
	}
	if s := FormatAverage(avg, ok); s != Dash {
		t.Errorf("FormatAverage = %q, want %q (не 0 и не NaN)", s, Dash)
	}
}

func TestAverageGradeSubjectFilter(t *testing.T) {
	records := []models.Grade{
		{StudentID: 1, SubjectID: 2, Value: 5},
		{StudentID: 1, SubjectID: 3, Value: 2},
	}
	avg, ok := AverageGrade(1, records, GradeFilter{SubjectID: ptrUint(2)})
	if !ok || avg != 5.0 {
		t.Errorf("subject filter: avg=%v ok=%v, want 5.0 true", avg, ok)
	}
}

func TestAverageGradeDateRangeInclusive(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.September, d, 10, 0, 0, 0, time.UTC) }
	records := []models.Grade{
		{StudentID: 1, SubjectID: 2, Value: 5, CreatedAt: day(1)},
		{StudentID: 1, SubjectID: 2, Value: 3, CreatedAt: day(10)},
		{StudentID: 1, SubjectID: 2, Value: 2, CreatedAt: day(20)},
	}
	from, to := day(1), day(10)
	avg, ok := AverageGrade(1, records, GradeFilter{From: &from, To: &to})
	if !ok || avg != 4.0 {
		t.Errorf("date range: avg=%v ok=%v, want 4.0 true", avg, ok)
	}
}

func TestIsPresentDefaultsToPresent(t *testing.T) {
	records := []models.Attendance{
		{StudentID: 1, ScheduleID: 100, Status: models.AttendanceAbsent},
	}
	if IsPresent(1, 100, records) {
		t.Error("explicit absent record must report absent")
	}
	// Нет записи — присутствует. Это правило журнала, а не значение по умолчанию Go.
	if !IsPresent(2, 100, records) {
		t.Error("student without a record defaults to present")
	}
	if !IsPresent(1, 101, records) {
		t.Error("another lesson without a record defaults to present")
	}
}

func TestSummarizeKeepsRosterOrderAndDashes(t *testing.T) {
	students := []models.User{
		{Model: gorm.Model{ID: 1}, LastName: "Иванов", FirstName: "Иван"},
		{Model: gorm.Model{ID: 2}, LastName: "Петрова", FirstName: "Анна", MiddleName: "Сергеевна"},
	}
	records := []models.Grade{
		{StudentID: 2, SubjectID: 7, Value: 5},
		{StudentID: 2, SubjectID: 7, Value: 4},
	}

	rows := Summarize(students, records, GradeFilter{})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].StudentID != 1 || rows[0].Average != Dash || rows[0].Count != 0 {
		t.Errorf("row 0 = %+v, want dash with zero count", rows[0])
	}
	if rows[1].Average != "4.5" || rows[1].Count != 2 {
		t.Errorf("row 1 = %+v, want average 4.5 of 2", rows[1])
	}
	if rows[1].FullName != "Петрова Анна Сергеевна" {
		t.Errorf("full name = %q", rows[1].FullName)
	}
}
