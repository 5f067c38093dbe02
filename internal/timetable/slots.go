// ejournal/internal/timetable/slots.go

// Package timetable holds the pure schedule-grid logic: resolving lesson
// slot numbers to time ranges and partitioning schedule entries into
// day-of-week buckets for the week view. All functions are stateless
// transforms over already fetched rows.
package timetable

import "ejournal/models"

// Dash is what the UI shows when a value cannot be resolved: a missing
// slot time or an empty grade average. Never rendered as "0".
const Dash = "—"

// TimeRange is the resolved start/end of a lesson slot.
type TimeRange struct {
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

func (r TimeRange) String() string {
	return r.Start + "–" + r.End
}

// SlotTable answers "when does lesson N start for class C". Built once from
// the fetched lesson_slots rows; class-specific rows override the
// school-wide defaults for the same slot number.
type SlotTable struct {
	defaults  map[int]TimeRange
	overrides map[slotKey]TimeRange
}

type slotKey struct {
	classID uint
	slot    int
}

// NewSlotTable indexes slot rows. Rows with ClassID nil form the default
// table; later duplicates win, matching the upsert semantics of the API.
func NewSlotTable(rows []models.LessonSlot) *SlotTable {
	t := &SlotTable{
		defaults:  make(map[int]TimeRange),
		overrides: make(map[slotKey]TimeRange),
	}
	for _, row := range rows {
		r := TimeRange{Start: row.StartTime, End: row.EndTime}
		if row.ClassID == nil {
			t.defaults[row.SlotNumber] = r
		} else {
			t.overrides[slotKey{classID: *row.ClassID, slot: row.SlotNumber}] = r
		}
	}
	return t
}

// Resolve returns the effective time range for a slot number, preferring the
// class override over the school default. ok=false means the slot is not
// configured at all; the caller shows Dash. Absence is a valid state, not
// an error.
func (t *SlotTable) Resolve(slotNumber int, classID uint) (TimeRange, bool) {
	if r, ok := t.overrides[slotKey{classID: classID, slot: slotNumber}]; ok {
		return r, true
	}
	if r, ok := t.defaults[slotNumber]; ok {
		return r, true
	}
	return TimeRange{}, false
}

// FormatSlot renders a resolved slot or Dash.
func (t *SlotTable) FormatSlot(slotNumber int, classID uint) string {
	r, ok := t.Resolve(slotNumber, classID)
	if !ok {
		return Dash
	}
	return r.String()
}
