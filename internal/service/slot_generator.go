package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/clock"
)

var (
	// ErrInvalidScheduleData means a stored rule or exception carries a time
	// the 12-hour grammar cannot parse. Schedules are validated on write, so
	// hitting this indicates corrupted data, not caller error.
	ErrInvalidScheduleData = errors.New("schedule contains an invalid time of day")
)

// DayWindow is the effective bookable window of one calendar date, in minutes
// since midnight of the provider's local day.
type DayWindow struct {
	Start int
	End   int
}

// GeneratedDay is the outcome of slot generation for one (schedule, date)
// pair. When no slots can be offered, Message carries the human-readable
// reason and Slots is empty.
type GeneratedDay struct {
	Slots   []entity.Slot
	Window  *DayWindow
	Message string
}

// GenerateSlots derives the ordered bookable slots for the given calendar date
// from a provider schedule. It is a pure function of its inputs: the same
// (schedule, date) pair always yields the same sequence.
//
// Resolution order: a date exception beats the weekly rule; an unavailable
// exception blocks the whole day; custom exception times override the rule's
// window. Slots overlapping a break are emitted with Available=false so the
// caller sees the full grid. Break containment is checked with exact
// minute-resolution interval overlap; any overlap excludes the slot.
func GenerateSlots(schedule *entity.ProviderSchedule, date time.Time) (*GeneratedDay, error) {
	exception := schedule.ExceptionForDate(date)
	if exception != nil && !exception.IsAvailable {
		message := exception.Reason
		if message == "" {
			message = "Provider is not available on this date"
		}
		return &GeneratedDay{Slots: []entity.Slot{}, Message: message}, nil
	}

	rule := schedule.RuleForDay(int(date.Weekday()))
	if rule == nil {
		return &GeneratedDay{
			Slots:   []entity.Slot{},
			Message: "No availability configured for this day of week",
		}, nil
	}

	start, err := clock.Parse(rule.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: rule start %q", ErrInvalidScheduleData, rule.StartTime)
	}
	end, err := clock.Parse(rule.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: rule end %q", ErrInvalidScheduleData, rule.EndTime)
	}

	if exception != nil {
		if exception.CustomStartTime != nil {
			start, err = clock.Parse(*exception.CustomStartTime)
			if err != nil {
				return nil, fmt.Errorf("%w: exception start %q", ErrInvalidScheduleData, *exception.CustomStartTime)
			}
		}
		if exception.CustomEndTime != nil {
			end, err = clock.Parse(*exception.CustomEndTime)
			if err != nil {
				return nil, fmt.Errorf("%w: exception end %q", ErrInvalidScheduleData, *exception.CustomEndTime)
			}
		}
	}

	if end <= start || rule.SlotDurationMinutes <= 0 {
		return &GeneratedDay{
			Slots:   []entity.Slot{},
			Window:  &DayWindow{Start: start, End: end},
			Message: "No bookable window on this day",
		}, nil
	}

	breaks, err := parseBreaks(rule.Breaks)
	if err != nil {
		return nil, err
	}

	duration := rule.SlotDurationMinutes
	step := duration + rule.BufferMinutes

	var slots []entity.Slot
	for cursor := start; cursor+duration <= end; cursor += step {
		slotEnd := cursor + duration
		slots = append(slots, entity.Slot{
			StartTime: clock.Format(cursor),
			EndTime:   clock.Format(slotEnd),
			Available: !overlapsAnyBreak(cursor, slotEnd, breaks),
		})
	}
	if slots == nil {
		slots = []entity.Slot{}
	}

	return &GeneratedDay{
		Slots:  slots,
		Window: &DayWindow{Start: start, End: end},
	}, nil
}

type breakWindow struct {
	start int
	end   int
}

func parseBreaks(intervals []entity.BreakInterval) ([]breakWindow, error) {
	windows := make([]breakWindow, 0, len(intervals))
	for _, interval := range intervals {
		start, err := clock.Parse(interval.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: break start %q", ErrInvalidScheduleData, interval.StartTime)
		}
		end, err := clock.Parse(interval.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: break end %q", ErrInvalidScheduleData, interval.EndTime)
		}
		windows = append(windows, breakWindow{start: start, end: end})
	}
	return windows, nil
}

func overlapsAnyBreak(slotStart, slotEnd int, breaks []breakWindow) bool {
	for _, b := range breaks {
		if clock.Overlaps(slotStart, slotEnd, b.start, b.end) {
			return true
		}
	}
	return false
}
