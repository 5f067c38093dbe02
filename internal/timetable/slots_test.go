package timetable

import (
	"testing"

	"ejournal/models"
)

func ptrUint(v uint) *uint { return &v }

func TestResolvePrefersClassOverride(t *testing.T) {
	// Слот 3: общешкольный 10:00–10:45, для 10 класса 10:15–11:00.
	table := NewSlotTable([]models.LessonSlot{
		{SlotNumber: 3, StartTime: "10:00", EndTime: "10:45"},
		{SlotNumber: 3, ClassID: ptrUint(10), StartTime: "10:15", EndTime: "11:00"},
	})

	got, ok := table.Resolve(3, 10)
	if !ok {
		t.Fatal("slot 3 for class 10 should resolve")
	}
	if got.Start != "10:15" || got.End != "11:00" {
		t.Errorf("class 10 got %v, want 10:15–11:00", got)
	}

	got, ok = table.Resolve(3, 11)
	if !ok {
		t.Fatal("slot 3 for class 11 should fall back to the default")
	}
	if got.Start != "10:00" || got.End != "10:45" {
		t.Errorf("class 11 got %v, want 10:00–10:45", got)
	}
}

func TestResolveUnconfiguredSlot(t *testing.T) {
	table := NewSlotTable([]models.LessonSlot{
		{SlotNumber: 1, StartTime: "08:30", EndTime: "09:15"},
	})

	if _, ok := table.Resolve(5, 10); ok {
		t.Error("slot 5 is not configured, Resolve must report ok=false")
	}
	if s := table.FormatSlot(5, 10); s != Dash {
		t.Errorf("FormatSlot = %q, want %q", s, Dash)
	}
	if s := table.FormatSlot(1, 10); s != "08:30–09:15" {
		t.Errorf("FormatSlot = %q", s)
	}
}

func TestOverrideDoesNotLeakAcrossClasses(t *testing.T) {
	table := NewSlotTable([]models.LessonSlot{
		{SlotNumber: 0, ClassID: ptrUint(7), StartTime: "07:45", EndTime: "08:25"},
	})

	if _, ok := table.Resolve(0, 8); ok {
		t.Error("class 8 has no default and no override for slot 0")
	}
	if r, ok := table.Resolve(0, 7); !ok || r.Start != "07:45" {
		t.Errorf("class 7 slot 0: got %v ok=%v", r, ok)
	}
}
