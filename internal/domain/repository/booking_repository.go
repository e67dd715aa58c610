package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByCustomerID(db *gorm.DB, customerID uuid.UUID) ([]entity.Booking, error)
	// FindActiveSlot returns the pending/confirmed booking holding the given
	// (provider, date, time slot), or nil when the slot is free.
	FindActiveSlot(db *gorm.DB, providerID uuid.UUID, date time.Time, timeSlot string) (*entity.Booking, error)
	// FindActiveByProviderAndDate returns all pending/confirmed bookings of a
	// provider on one calendar date.
	FindActiveByProviderAndDate(db *gorm.DB, providerID uuid.UUID, date time.Time) ([]entity.Booking, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BookingStatus) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
