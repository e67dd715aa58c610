package repository

import (
	"gorm.io/gorm"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, auditLog *entity.AuditLog) error
	FindRecent(db *gorm.DB, limit int) ([]entity.AuditLog, error)
}
