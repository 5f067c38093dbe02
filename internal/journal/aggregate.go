// ejournal/internal/journal/aggregate.go

// Package journal computes the derived views of the grade and attendance
// journals: per-student averages and presence flags. Pure transforms over
// fetched rows; the business defaults here (empty average shows a dash,
// missing attendance record means present) are deliberate and must not be
// "fixed" to zero/absent.
package journal

import (
	"strconv"
	"time"

	"ejournal/models"
)

// Dash is the placeholder for an undefined average. Mirrors the schedule
// grid: an empty selection is "—", never 0 or NaN.
const Dash = "—"

// GradeFilter narrows the records that contribute to an average. Nil fields
// mean "no restriction". The date range is inclusive on both ends and
// compares calendar dates, not instants.
type GradeFilter struct {
	SubjectID *uint
	From      *time.Time
	To        *time.Time
}

func (f GradeFilter) Matches(g models.Grade) bool {
	if f.SubjectID != nil && g.SubjectID != *f.SubjectID {
		return false
	}
	if f.From != nil && dateBefore(g.CreatedAt, *f.From) {
		return false
	}
	if f.To != nil && dateBefore(*f.To, g.CreatedAt) {
		return false
	}
	return true
}

// dateBefore reports whether a's calendar date is strictly before b's.
func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// AverageGrade returns the arithmetic mean of the student's grades matching
// the filter. ok=false means no records matched; the caller renders Dash.
func AverageGrade(studentID uint, records []models.Grade, f GradeFilter) (float64, bool) {
	sum, count := 0, 0
	for _, g := range records {
		if g.StudentID != studentID {
			continue
		}
		if !f.Matches(g) {
			continue
		}
		sum += g.Value
		count++
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

// FormatAverage renders an average to one decimal place, or Dash when there
// is nothing to average.
func FormatAverage(avg float64, ok bool) string {
	if !ok {
		return Dash
	}
	return strconv.FormatFloat(avg, 'f', 1, 64)
}

// IsPresent reports the attendance status of a student on a lesson.
// No record means present — документированное правило журнала, а не пропуск.
func IsPresent(studentID, scheduleID uint, records []models.Attendance) bool {
	for _, a := range records {
		if a.StudentID == studentID && a.ScheduleID == scheduleID {
			return a.Status != models.AttendanceAbsent
		}
	}
	return true
}

// StudentSummary is one row of the class journal summary.
type StudentSummary struct {
	StudentID uint   `json:"studentId"`
	FullName  string `json:"fullName"`
	Count     int    `json:"gradeCount"`
	Average   string `json:"average"`
}

// Summarize builds per-student averages for a roster, in roster order.
// Students without matching grades get a Dash, not a zero row.
func Summarize(students []models.User, records []models.Grade, f GradeFilter) []StudentSummary {
	out := make([]StudentSummary, 0, len(students))
	for _, s := range students {
		avg, ok := AverageGrade(s.ID, records, f)
		count := 0
		for _, g := range records {
			if g.StudentID == s.ID && f.Matches(g) {
				count++
			}
		}
		out = append(out, StudentSummary{
			StudentID: s.ID,
			FullName:  FullName(s),
			Count:     count,
			Average:   FormatAverage(avg, ok),
		})
	}
	return out
}

// FullName renders "Фамилия Имя Отчество" without trailing spaces for
// missing parts.
func FullName(u models.User) string {
	name := u.LastName
	if u.FirstName != "" {
		name += " " + u.FirstName
	}
	if u.MiddleName != "" {
		name += " " + u.MiddleName
	}
	return name
}
