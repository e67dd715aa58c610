package service

import (
	"reflect"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/clock"
)

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func weekdaySchedule(rules []entity.AvailabilityRule, exceptions []entity.DateException) *entity.ProviderSchedule {
	return &entity.ProviderSchedule{
		Timezone:           "UTC",
		AdvanceBookingDays: 30,
		WeeklyRules:        rules,
		Exceptions:         exceptions,
	}
}

func mondayRule(breaks ...entity.BreakInterval) entity.AvailabilityRule {
	return entity.AvailabilityRule{
		ID:                  1,
		DayOfWeek:           1,
		Enabled:             true,
		StartTime:           "9:00 AM",
		EndTime:             "5:00 PM",
		SlotDurationMinutes: 60,
		Breaks:              datatypes.JSONSlice[entity.BreakInterval](breaks),
	}
}

func availableStarts(slots []entity.Slot) []string {
	var starts []string
	for _, s := range slots {
		if s.Available {
			starts = append(starts, s.StartTime)
		}
	}
	return starts
}

func TestGenerateSlots_FullWorkday(t *testing.T) {
	schedule := weekdaySchedule([]entity.AvailabilityRule{mondayRule()}, nil)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM"}
	got := availableStarts(day.Slots)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("available slot starts = %v, want %v", got, want)
	}

	for _, slot := range day.Slots {
		if slot.EndTime == "" {
			t.Errorf("slot %s has no end time", slot.StartTime)
		}
	}
	if day.Window == nil || day.Window.Start != 9*60 || day.Window.End != 17*60 {
		t.Errorf("unexpected window: %+v", day.Window)
	}
}

func TestGenerateSlots_NoSlotPastWindowEnd(t *testing.T) {
	rule := mondayRule()
	rule.EndTime = "4:30 PM"
	schedule := weekdaySchedule([]entity.AvailabilityRule{rule}, nil)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 4:00 PM slot would end at 5:00 PM, past the 4:30 PM window end.
	last := day.Slots[len(day.Slots)-1]
	if last.StartTime != "3:00 PM" {
		t.Errorf("last slot starts at %s, want 3:00 PM", last.StartTime)
	}
}

func TestGenerateSlots_LunchBreakExcluded(t *testing.T) {
	schedule := weekdaySchedule([]entity.AvailabilityRule{
		mondayRule(entity.BreakInterval{StartTime: "12:00 PM", EndTime: "1:00 PM"}),
	}, nil)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(day.Slots) != 8 {
		t.Fatalf("grid should still hold 8 slots, got %d", len(day.Slots))
	}

	got := availableStarts(day.Slots)
	want := []string{"9:00 AM", "10:00 AM", "11:00 AM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("available slot starts = %v, want %v", got, want)
	}
}

func TestGenerateSlots_PartialBreakOverlapExcluded(t *testing.T) {
	// Break starts 30 minutes into the 12:00 PM slot; minute-resolution
	// overlap must still exclude the whole slot.
	schedule := weekdaySchedule([]entity.AvailabilityRule{
		mondayRule(entity.BreakInterval{StartTime: "12:30 PM", EndTime: "12:45 PM"}),
	}, nil)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slot := range day.Slots {
		if slot.StartTime == "12:00 PM" && slot.Available {
			t.Fatal("12:00 PM slot overlaps the break and must be unavailable")
		}
		if slot.StartTime == "1:00 PM" && !slot.Available {
			t.Fatal("1:00 PM slot does not overlap the break and must stay available")
		}
	}
}

func TestGenerateSlots_BufferKeepsGridAlignment(t *testing.T) {
	rule := mondayRule()
	rule.EndTime = "12:00 PM"
	rule.BufferMinutes = 30
	schedule := weekdaySchedule([]entity.AvailabilityRule{rule}, nil)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := availableStarts(day.Slots)
	want := []string{"9:00 AM", "10:30 AM"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("available slot starts = %v, want %v", got, want)
	}
}

func TestGenerateSlots_BlockedExceptionWins(t *testing.T) {
	schedule := weekdaySchedule(
		[]entity.AvailabilityRule{mondayRule()},
		[]entity.DateException{{Date: monday, IsAvailable: false, Reason: "Holiday"}},
	)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(day.Slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(day.Slots))
	}
	if day.Message != "Holiday" {
		t.Errorf("message = %q, want %q", day.Message, "Holiday")
	}
}

func TestGenerateSlots_CustomExceptionWindow(t *testing.T) {
	customStart := "10:00 AM"
	customEnd := "1:00 PM"
	schedule := weekdaySchedule(
		[]entity.AvailabilityRule{mondayRule()},
		[]entity.DateException{{
			Date:            monday,
			IsAvailable:     true,
			CustomStartTime: &customStart,
			CustomEndTime:   &customEnd,
		}},
	)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := availableStarts(day.Slots)
	want := []string{"10:00 AM", "11:00 AM", "12:00 PM"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("available slot starts = %v, want %v", got, want)
	}
}

func TestGenerateSlots_NoRuleForDay(t *testing.T) {
	schedule := weekdaySchedule([]entity.AvailabilityRule{mondayRule()}, nil)
	sunday := monday.AddDate(0, 0, -1)

	day, err := GenerateSlots(schedule, sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(day.Slots) != 0 {
		t.Fatalf("expected no slots for unconfigured day, got %d", len(day.Slots))
	}
	if day.Message == "" {
		t.Error("expected an explanatory message for unconfigured day")
	}
}

func TestGenerateSlots_DisabledRuleIgnored(t *testing.T) {
	rule := mondayRule()
	rule.Enabled = false
	schedule := weekdaySchedule([]entity.AvailabilityRule{rule}, nil)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day.Slots) != 0 {
		t.Fatalf("disabled rule must produce no slots, got %d", len(day.Slots))
	}
}

func TestGenerateSlots_FirstDuplicateRuleWins(t *testing.T) {
	second := mondayRule()
	second.ID = 2
	second.StartTime = "1:00 PM"
	second.EndTime = "3:00 PM"
	schedule := weekdaySchedule([]entity.AvailabilityRule{mondayRule(), second}, nil)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if day.Slots[0].StartTime != "9:00 AM" {
		t.Errorf("first enabled rule should win, first slot = %s", day.Slots[0].StartTime)
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	schedule := weekdaySchedule([]entity.AvailabilityRule{
		mondayRule(entity.BreakInterval{StartTime: "12:00 PM", EndTime: "1:00 PM"}),
	}, nil)

	first, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two generations with no mutation in between must be identical")
	}
}

func TestGenerateSlots_NoOverlapBetweenSlots(t *testing.T) {
	rule := mondayRule()
	rule.SlotDurationMinutes = 45
	rule.BufferMinutes = 15
	schedule := weekdaySchedule([]entity.AvailabilityRule{rule}, nil)

	day, err := GenerateSlots(schedule, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(day.Slots); i++ {
		prevEnd, err := clock.Parse(day.Slots[i-1].EndTime)
		if err != nil {
			t.Fatalf("slot %d: bad end time %q", i-1, day.Slots[i-1].EndTime)
		}
		curStart, err := clock.Parse(day.Slots[i].StartTime)
		if err != nil {
			t.Fatalf("slot %d: bad start time %q", i, day.Slots[i].StartTime)
		}
		if curStart < prevEnd {
			t.Fatalf("slot %d starts at %s before previous slot ends at %s",
				i, day.Slots[i].StartTime, day.Slots[i-1].EndTime)
		}
	}
}

func TestGenerateSlots_InvalidStoredTime(t *testing.T) {
	rule := mondayRule()
	rule.StartTime = "25:00"
	schedule := weekdaySchedule([]entity.AvailabilityRule{rule}, nil)

	if _, err := GenerateSlots(schedule, monday); err == nil {
		t.Fatal("expected error for malformed stored rule time")
	}
}
