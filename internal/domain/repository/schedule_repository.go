package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

type ScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.ProviderSchedule) error
	// FindByProviderID loads the schedule with its weekly rules and exceptions.
	FindByProviderID(db *gorm.DB, providerID uuid.UUID) (*entity.ProviderSchedule, error)
	Save(db *gorm.DB, schedule *entity.ProviderSchedule) error
	// ReplaceWeeklyRules drops all rules of the schedule and inserts the given set.
	ReplaceWeeklyRules(db *gorm.DB, scheduleID uuid.UUID, rules []entity.AvailabilityRule) error
	// ReplaceExceptions drops all exceptions of the schedule and inserts the given set.
	ReplaceExceptions(db *gorm.DB, scheduleID uuid.UUID, exceptions []entity.DateException) error
	Delete(db *gorm.DB, providerID uuid.UUID) (int64, error)
}
