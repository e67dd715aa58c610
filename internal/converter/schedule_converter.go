package converter

import (
	"github.com/google/uuid"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/service"
)

// ScheduleToResponse converts a ProviderSchedule entity with its rules and
// exceptions to a ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.ProviderSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	rules := make([]dto.DayRuleResponse, len(schedule.WeeklyRules))
	for i, rule := range schedule.WeeklyRules {
		breaks := make([]dto.BreakResponse, len(rule.Breaks))
		for j, b := range rule.Breaks {
			breaks[j] = dto.BreakResponse{StartTime: b.StartTime, EndTime: b.EndTime}
		}
		rules[i] = dto.DayRuleResponse{
			DayOfWeek:           rule.DayOfWeek,
			Enabled:             rule.Enabled,
			StartTime:           rule.StartTime,
			EndTime:             rule.EndTime,
			SlotDurationMinutes: rule.SlotDurationMinutes,
			BufferMinutes:       rule.BufferMinutes,
			Breaks:              breaks,
		}
	}

	exceptions := make([]dto.DateExceptionResponse, len(schedule.Exceptions))
	for i, exc := range schedule.Exceptions {
		exceptions[i] = dto.DateExceptionResponse{
			Date:            exc.Date.Format("2006-01-02"),
			IsAvailable:     exc.IsAvailable,
			CustomStartTime: exc.CustomStartTime,
			CustomEndTime:   exc.CustomEndTime,
			Reason:          exc.Reason,
		}
	}

	return &dto.ScheduleResponse{
		ID:                 schedule.ID,
		ProviderID:         schedule.ProviderID,
		Timezone:           schedule.Timezone,
		AdvanceBookingDays: schedule.AdvanceBookingDays,
		WeeklyRules:        rules,
		Exceptions:         exceptions,
		CreatedAt:          schedule.CreatedAt,
		UpdatedAt:          schedule.UpdatedAt,
	}
}

// SlotSnapshotToResponse converts a generated (or cached) slot day to its DTO
func SlotSnapshotToResponse(providerID uuid.UUID, snapshot *service.SlotDaySnapshot) *dto.SlotDayResponse {
	if snapshot == nil {
		return nil
	}

	slots := make([]dto.SlotResponse, len(snapshot.Slots))
	for i, slot := range snapshot.Slots {
		slots[i] = dto.SlotResponse{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Available: slot.Available,
		}
	}

	return &dto.SlotDayResponse{
		ProviderID:  providerID,
		Date:        snapshot.Date,
		Timezone:    snapshot.Timezone,
		WindowStart: snapshot.WindowStart,
		WindowEnd:   snapshot.WindowEnd,
		Slots:       slots,
		Message:     snapshot.Message,
	}
}
