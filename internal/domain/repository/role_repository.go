package repository

import (
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

type RoleRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
}
