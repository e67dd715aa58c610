package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProviderSchedule is the per-provider availability record: recurring weekly
// rules, date-specific exceptions and provider-wide settings. Exactly one per
// provider; bookable slots are derived from it, never stored.
type ProviderSchedule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"provider_id"`
	// Timezone is the IANA zone all wall-clock times in rules and exceptions
	// are local to.
	Timezone string `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	// AdvanceBookingDays is the booking horizon; dates beyond today+horizon
	// are not offered.
	AdvanceBookingDays int       `gorm:"not null;default:30" json:"advance_booking_days"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Provider    User               `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	WeeklyRules []AvailabilityRule `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE" json:"weekly_rules,omitempty"`
	Exceptions  []DateException    `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE" json:"exceptions,omitempty"`
}

func (ProviderSchedule) TableName() string {
	return "provider_schedules"
}

func (s *ProviderSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Location resolves the schedule timezone, falling back to UTC when the zone
// name is missing or unknown.
func (s *ProviderSchedule) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RuleForDay returns the first enabled weekly rule for the given day of week
// (0=Sunday..6=Saturday). Duplicate rules for one weekday are a data-entry
// anomaly; the lowest row id wins.
func (s *ProviderSchedule) RuleForDay(dayOfWeek int) *AvailabilityRule {
	for i := range s.WeeklyRules {
		rule := &s.WeeklyRules[i]
		if rule.DayOfWeek == dayOfWeek && rule.Enabled {
			return rule
		}
	}
	return nil
}

// ExceptionForDate returns the date exception for the given calendar date, or
// nil when none exists.
func (s *ProviderSchedule) ExceptionForDate(date time.Time) *DateException {
	for i := range s.Exceptions {
		exc := &s.Exceptions[i]
		if exc.Date.Year() == date.Year() && exc.Date.YearDay() == date.YearDay() {
			return exc
		}
	}
	return nil
}

// BreakInterval is a window inside a working day that must not be booked.
// Times use the 12-hour wire format.
type BreakInterval struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityRule is the recurring weekly rule for a single day of week.
type AvailabilityRule struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ScheduleID uuid.UUID `gorm:"type:uuid;not null;index" json:"schedule_id"`
	DayOfWeek  int       `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	Enabled    bool      `gorm:"not null;default:true" json:"enabled"`
	StartTime  string    `gorm:"type:varchar(10);not null" json:"start_time"`
	EndTime    string    `gorm:"type:varchar(10);not null" json:"end_time"`
	// SlotDurationMinutes is the length of each generated slot (15-480).
	SlotDurationMinutes int `gorm:"not null" json:"slot_duration_minutes"`
	// BufferMinutes is the gap inserted after each slot (0-120).
	BufferMinutes int                                 `gorm:"not null;default:0" json:"buffer_minutes"`
	Breaks        datatypes.JSONSlice[BreakInterval] `gorm:"type:jsonb" json:"breaks,omitempty"`
}

func (AvailabilityRule) TableName() string {
	return "availability_rules"
}

// DateException overrides the weekly rule for one calendar date.
type DateException struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ScheduleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_exceptions_schedule_date" json:"schedule_id"`
	// Date is stored at midnight UTC; only the calendar date is meaningful.
	Date time.Time `gorm:"type:date;not null;uniqueIndex:idx_exceptions_schedule_date" json:"date"`
	// IsAvailable false blocks the whole day regardless of the weekly rule.
	IsAvailable     bool    `gorm:"not null" json:"is_available"`
	CustomStartTime *string `gorm:"type:varchar(10)" json:"custom_start_time,omitempty"`
	CustomEndTime   *string `gorm:"type:varchar(10)" json:"custom_end_time,omitempty"`
	Reason          string  `gorm:"type:text" json:"reason,omitempty"`
}

func (DateException) TableName() string {
	return "date_exceptions"
}
