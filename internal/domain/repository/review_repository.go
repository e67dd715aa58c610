package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Review, error)
	FindByCustomerAndService(db *gorm.DB, customerID, serviceID uuid.UUID) (*entity.Review, error)
}
