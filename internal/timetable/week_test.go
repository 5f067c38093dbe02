package timetable

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"ejournal/models"
)

func gormModel(id uint) gorm.Model { return gorm.Model{ID: id} }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func entryIDs(entries []models.Schedule) []uint {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestPartitionWeekDatedEntryBeatsDayOfWeek(t *testing.T) {
	// Сценарий из журнала: урок по дню недели и урок, привязанный к дате
	// 2024-05-06 (понедельник), оба попадают в понедельник, 08:00 раньше 09:00.
	entries := []models.Schedule{
		{Model: gormModel(1), DayOfWeek: 1, StartTime: "09:00"},
		{Model: gormModel(2), DayOfWeek: 4, ScheduleDate: date(2024, time.May, 6), StartTime: "08:00"},
	}
	weekStart := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	buckets := PartitionWeek(entries, weekStart)

	monday := entryIDs(buckets[0])
	if len(monday) != 2 || monday[0] != 2 || monday[1] != 1 {
		t.Fatalf("monday bucket = %v, want [2 1]", monday)
	}
	// DayOfWeek=4 у второй записи игнорируется: дата главнее.
	if len(buckets[3]) != 0 {
		t.Errorf("thursday bucket should be empty, got %v", entryIDs(buckets[3]))
	}
}

func TestPartitionWeekCoversAllSevenDaysOnce(t *testing.T) {
	entries := []models.Schedule{
		{Model: gormModel(1), DayOfWeek: 1, StartTime: "08:00"},
		{Model: gormModel(2), DayOfWeek: 3, StartTime: "08:00"},
		{Model: gormModel(3), DayOfWeek: 7, StartTime: "08:00"},
		{Model: gormModel(4), ScheduleDate: date(2024, time.May, 8), StartTime: "10:00"},  // среда
		{Model: gormModel(5), ScheduleDate: date(2024, time.May, 20), StartTime: "10:00"}, // другая неделя
		{Model: gormModel(6), DayOfWeek: 0, StartTime: "10:00"},                           // некорректный день
	}
	weekStart := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	buckets := PartitionWeek(entries, weekStart)

	seen := map[uint]int{}
	total := 0
	for _, b := range buckets {
		for _, e := range b {
			seen[e.ID]++
			total += 1
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("entry %d appears in %d buckets", id, n)
		}
	}
	if total != 4 {
		t.Fatalf("total bucketed entries = %d, want 4 (ids 1,2,3,4)", total)
	}
	if _, ok := seen[5]; ok {
		t.Error("entry 5 belongs to another week")
	}
	if _, ok := seen[6]; ok {
		t.Error("entry 6 has no valid day and no date")
	}
	// Воскресенье — седьмая колонка.
	if got := entryIDs(buckets[6]); len(got) != 1 || got[0] != 3 {
		t.Errorf("sunday bucket = %v, want [3]", got)
	}
}

func TestPartitionWeekOrdersByStartTime(t *testing.T) {
	entries := []models.Schedule{
		{Model: gormModel(1), DayOfWeek: 2, StartTime: "13:30"},
		{Model: gormModel(2), DayOfWeek: 2, StartTime: "08:00"},
		{Model: gormModel(3), DayOfWeek: 2, StartTime: "09:45"},
		{Model: gormModel(4), DayOfWeek: 2, StartTime: "09:45"}, // подгруппы в одно время
	}
	weekStart := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	buckets := PartitionWeek(entries, weekStart)

	tuesday := buckets[1]
	for i := 1; i < len(tuesday); i++ {
		if tuesday[i-1].StartTime > tuesday[i].StartTime {
			t.Fatalf("bucket not ordered: %v", entryIDs(tuesday))
		}
	}
	// Стабильность: записи 3 и 4 с одинаковым временем сохраняют порядок.
	got := entryIDs(tuesday)
	want := []uint{2, 3, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tuesday bucket = %v, want %v", got, want)
		}
	}
}

func TestPartitionWeekDateComparisonIgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2024, time.May, 7, 12, 30, 0, 0, time.UTC)
	entries := []models.Schedule{
		{Model: gormModel(1), ScheduleDate: &noon, StartTime: "08:00"},
	}
	weekStart := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	buckets := PartitionWeek(entries, weekStart)
	if len(buckets[1]) != 1 {
		t.Fatalf("entry with noon timestamp must land on its calendar date, got %v", entryIDs(buckets[1]))
	}
}

func TestISOWeekday(t *testing.T) {
	cases := []struct {
		day  time.Time
		want int
	}{
		{time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC), 1},  // понедельник
		{time.Date(2024, time.May, 11, 0, 0, 0, 0, time.UTC), 6}, // суббота
		{time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC), 7}, // воскресенье
	}
	for _, c := range cases {
		if got := ISOWeekday(c.day); got != c.want {
			t.Errorf("ISOWeekday(%s) = %d, want %d", c.day.Format("2006-01-02"), got, c.want)
		}
	}
}
