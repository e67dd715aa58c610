package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
	domainRepo "github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/repository"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) Create(db *gorm.DB, schedule *entity.ProviderSchedule) error {
	return db.Create(schedule).Error
}

func (r *scheduleRepository) FindByProviderID(db *gorm.DB, providerID uuid.UUID) (*entity.ProviderSchedule, error) {
	var schedule entity.ProviderSchedule
	err := db.
		Preload("WeeklyRules", func(db *gorm.DB) *gorm.DB {
			return db.Order("availability_rules.day_of_week ASC, availability_rules.id ASC")
		}).
		Preload("Exceptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_exceptions.date ASC")
		}).
		Where("provider_id = ?", providerID).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) Save(db *gorm.DB, schedule *entity.ProviderSchedule) error {
	return db.Omit("Provider", "WeeklyRules", "Exceptions").Save(schedule).Error
}

func (r *scheduleRepository) ReplaceWeeklyRules(db *gorm.DB, scheduleID uuid.UUID, rules []entity.AvailabilityRule) error {
	if err := db.Where("schedule_id = ?", scheduleID).Delete(&entity.AvailabilityRule{}).Error; err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}
	for i := range rules {
		rules[i].ID = 0
		rules[i].ScheduleID = scheduleID
	}
	return db.Create(&rules).Error
}

func (r *scheduleRepository) ReplaceExceptions(db *gorm.DB, scheduleID uuid.UUID, exceptions []entity.DateException) error {
	if err := db.Where("schedule_id = ?", scheduleID).Delete(&entity.DateException{}).Error; err != nil {
		return err
	}
	if len(exceptions) == 0 {
		return nil
	}
	for i := range exceptions {
		exceptions[i].ID = 0
		exceptions[i].ScheduleID = scheduleID
	}
	return db.Create(&exceptions).Error
}

func (r *scheduleRepository) Delete(db *gorm.DB, providerID uuid.UUID) (int64, error) {
	var schedule entity.ProviderSchedule
	err := db.Where("provider_id = ?", providerID).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	// Child rows first; FK cascade is not guaranteed across all deployments.
	if err := db.Where("schedule_id = ?", schedule.ID).Delete(&entity.AvailabilityRule{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("schedule_id = ?", schedule.ID).Delete(&entity.DateException{}).Error; err != nil {
		return 0, err
	}

	affected := db.Where("id = ?", schedule.ID).Delete(&entity.ProviderSchedule{})
	return affected.RowsAffected, affected.Error
}
