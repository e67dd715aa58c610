package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BreakRequest struct {
	StartTime string `json:"start_time" validate:"required,timeofday"`
	EndTime   string `json:"end_time" validate:"required,timeofday"`
}

type DayRuleRequest struct {
	DayOfWeek           int            `json:"day_of_week" validate:"gte=0,lte=6"` // 0=Sunday .. 6=Saturday
	Enabled             bool           `json:"enabled"`
	StartTime           string         `json:"start_time" validate:"required,timeofday"`
	EndTime             string         `json:"end_time" validate:"required,timeofday"`
	SlotDurationMinutes int            `json:"slot_duration_minutes" validate:"required,gte=15,lte=480"`
	BufferMinutes       int            `json:"buffer_minutes" validate:"gte=0,lte=120"`
	Breaks              []BreakRequest `json:"breaks" validate:"omitempty,dive"`
}

type DateExceptionRequest struct {
	Date            string  `json:"date" validate:"required"` // Format: YYYY-MM-DD
	IsAvailable     bool    `json:"is_available"`
	CustomStartTime *string `json:"custom_start_time" validate:"omitempty,timeofday"`
	CustomEndTime   *string `json:"custom_end_time" validate:"omitempty,timeofday"`
	Reason          string  `json:"reason" validate:"max=500"`
}

// SetScheduleRequest replaces the full schedule (upsert semantics).
type SetScheduleRequest struct {
	WeeklyRules        []DayRuleRequest       `json:"weekly_rules" validate:"required,min=1,dive"`
	Exceptions         []DateExceptionRequest `json:"exceptions" validate:"omitempty,dive"`
	Timezone           string                 `json:"timezone" validate:"omitempty,timezone_iana"`
	AdvanceBookingDays int                    `json:"advance_booking_days" validate:"omitempty,gte=1,lte=365"`
}

// PatchScheduleRequest updates only the provided sections.
type PatchScheduleRequest struct {
	WeeklyRules        *[]DayRuleRequest       `json:"weekly_rules" validate:"omitempty,dive"`
	Exceptions         *[]DateExceptionRequest `json:"exceptions" validate:"omitempty,dive"`
	Timezone           *string                 `json:"timezone" validate:"omitempty,timezone_iana"`
	AdvanceBookingDays *int                    `json:"advance_booking_days" validate:"omitempty,gte=1,lte=365"`
}

// Response DTOs

type BreakResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DayRuleResponse struct {
	DayOfWeek           int             `json:"day_of_week"`
	Enabled             bool            `json:"enabled"`
	StartTime           string          `json:"start_time"`
	EndTime             string          `json:"end_time"`
	SlotDurationMinutes int             `json:"slot_duration_minutes"`
	BufferMinutes       int             `json:"buffer_minutes"`
	Breaks              []BreakResponse `json:"breaks,omitempty"`
}

type DateExceptionResponse struct {
	Date            string  `json:"date"`
	IsAvailable     bool    `json:"is_available"`
	CustomStartTime *string `json:"custom_start_time,omitempty"`
	CustomEndTime   *string `json:"custom_end_time,omitempty"`
	Reason          string  `json:"reason,omitempty"`
}

type ScheduleResponse struct {
	ID                 uuid.UUID               `json:"id"`
	ProviderID         uuid.UUID               `json:"provider_id"`
	Timezone           string                  `json:"timezone"`
	AdvanceBookingDays int                     `json:"advance_booking_days"`
	WeeklyRules        []DayRuleResponse       `json:"weekly_rules"`
	Exceptions         []DateExceptionResponse `json:"exceptions"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// Slot DTOs

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// SlotDayResponse is the answer to "what can I book on this date": the full
// slot grid plus the effective window, or an empty grid with a message.
type SlotDayResponse struct {
	ProviderID  uuid.UUID      `json:"provider_id"`
	Date        string         `json:"date"`
	Timezone    string         `json:"timezone"`
	WindowStart string         `json:"window_start,omitempty"`
	WindowEnd   string         `json:"window_end,omitempty"`
	Slots       []SlotResponse `json:"slots"`
	Message     string         `json:"message,omitempty"`
}
