package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

// activeSlotIndexSQL is the single-booker guarantee: at most one pending or
// confirmed booking may hold a (provider, date, slot) triple. Cancelled and
// completed bookings fall out of the index and free the slot. The same
// statement is valid on PostgreSQL and SQLite.
const activeSlotIndexSQL = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
ON bookings (provider_id, booking_date, time_slot)
WHERE status IN ('pending', 'confirmed')`

// Migrate creates the schema, the partial unique index over active bookings
// and the fixed role rows.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Service{},
		&entity.Review{},
		&entity.ProviderSchedule{},
		&entity.AvailabilityRule{},
		&entity.DateException{},
		&entity.Booking{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := db.Exec(activeSlotIndexSQL).Error; err != nil {
		return fmt.Errorf("failed to create active slot index: %w", err)
	}

	return seedRoles(db)
}

func seedRoles(db *gorm.DB) error {
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Platform administrator"},
		{ID: entity.RoleIDProvider, RoleName: entity.RoleProvider, Description: "Service provider"},
		{ID: entity.RoleIDCustomer, RoleName: entity.RoleCustomer, Description: "Customer"},
	}
	for _, role := range roles {
		if err := db.Where("id = ?", role.ID).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %q: %w", role.RoleName, err)
		}
	}
	return nil
}
