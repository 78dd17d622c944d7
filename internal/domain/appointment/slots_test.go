package appointment

import (
	"testing"
	"time"
)

var testHours = WorkingHours{Start: 10, End: 20}

func mkDay(loc *time.Location) time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
}

func TestAvailableSlots_FullWindow(t *testing.T) {
	loc := time.UTC
	day := mkDay(loc)
	now := day.Add(-24 * time.Hour) // day is in the future

	slots := AvailableSlots(day, 30*time.Minute, testHours, nil, now)

	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(10 * time.Hour)) {
		t.Fatalf("expected first slot 10:00, got %s", slots[0].Format(time.RFC3339))
	}
	if !slots[9].Equal(day.Add(19 * time.Hour)) {
		t.Fatalf("expected last slot 19:00, got %s", slots[9].Format(time.RFC3339))
	}
}

func TestAvailableSlots_FiltersBusyStarts(t *testing.T) {
	loc := time.UTC
	day := mkDay(loc)
	now := day.Add(-24 * time.Hour)

	busy := []time.Time{
		day.Add(10 * time.Hour),
		day.Add(14 * time.Hour),
	}

	slots := AvailableSlots(day, 30*time.Minute, testHours, busy, now)

	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		for _, b := range busy {
			if slot.Equal(b) {
				t.Fatalf("busy slot %s offered", slot.Format(time.RFC3339))
			}
		}
	}
	if !slots[0].Equal(day.Add(11 * time.Hour)) {
		t.Fatalf("expected first slot 11:00, got %s", slots[0].Format(time.RFC3339))
	}
}

func TestAvailableSlots_SkipsPastOnSameDay(t *testing.T) {
	loc := time.UTC
	day := mkDay(loc)
	now := day.Add(15*time.Hour + 30*time.Minute) // 15:30 same day

	slots := AvailableSlots(day, 30*time.Minute, testHours, nil, now)

	// 10:00..15:00 are gone, 16:00..19:00 remain.
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(16 * time.Hour)) {
		t.Fatalf("expected first slot 16:00, got %s", slots[0].Format(time.RFC3339))
	}
}

func TestAvailableSlots_PastDayIsEmpty(t *testing.T) {
	loc := time.UTC
	day := mkDay(loc)
	now := day.Add(21 * time.Hour) // after closing, same day

	slots := AvailableSlots(day, 30*time.Minute, testHours, nil, now)
	if len(slots) != 0 {
		t.Fatalf("expected no slots after closing, got %d", len(slots))
	}
}

func TestAvailableSlots_Ascending(t *testing.T) {
	loc := time.UTC
	day := mkDay(loc)
	now := day.Add(-time.Hour)

	busy := []time.Time{day.Add(12 * time.Hour), day.Add(17 * time.Hour)}
	slots := AvailableSlots(day, time.Hour, testHours, busy, now)

	for i := 1; i < len(slots); i++ {
		if !slots[i-1].Before(slots[i]) {
			t.Fatalf("slots out of order at %d: %s >= %s",
				i, slots[i-1].Format(time.RFC3339), slots[i].Format(time.RFC3339))
		}
	}
}
