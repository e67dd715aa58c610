package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

// ServiceFilter is a domain-level filter for querying the service catalog.
// Used by the repository layer to avoid coupling with delivery DTOs.
type ServiceFilter struct {
	ProviderID *uuid.UUID
	Category   string // ILIKE match
	ActiveOnly bool
}

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error)
	FindAll(db *gorm.DB, filter *ServiceFilter) ([]entity.Service, error)
	Update(db *gorm.DB, service *entity.Service) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
