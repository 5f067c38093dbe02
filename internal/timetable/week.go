// ejournal/internal/timetable/week.go

package timetable

import (
	"sort"
	"time"

	"ejournal/models"
)

// DaysPerWeek — колонки недельной сетки, понедельник..воскресенье.
const DaysPerWeek = 7

// ISOWeekday maps time.Weekday to the ISO convention used in schedule rows:
// Monday=1 .. Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// sameDate compares two times by calendar date only, ignoring time-of-day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// PartitionWeek buckets entries into the 7 calendar days of the week starting
// at weekStart (expected to be a Monday, but any date works: bucket d covers
// weekStart+d days). An entry with a concrete ScheduleDate belongs to the
// bucket of that exact date; DayOfWeek is ignored for it. Entries without a
// date recur weekly by DayOfWeek. Each bucket is sorted ascending by
// StartTime; the fixed "HH:MM" format makes string comparison sufficient.
// The sort is stable, so entries with equal times keep their input order.
func PartitionWeek(entries []models.Schedule, weekStart time.Time) [DaysPerWeek][]models.Schedule {
	var buckets [DaysPerWeek][]models.Schedule

	for d := 0; d < DaysPerWeek; d++ {
		date := weekStart.AddDate(0, 0, d)
		dayNumber := ISOWeekday(date)

		for _, e := range entries {
			if e.ScheduleDate != nil {
				if sameDate(*e.ScheduleDate, date) {
					buckets[d] = append(buckets[d], e)
				}
				continue
			}
			if e.DayOfWeek == dayNumber {
				buckets[d] = append(buckets[d], e)
			}
		}

		day := buckets[d]
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].StartTime < day[j].StartTime
		})
	}

	return buckets
}
