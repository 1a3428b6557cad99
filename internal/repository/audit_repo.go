package repository

import (
	"github.com/Yogesh-MG/Meditrackpro/internal/models"

	"gorm.io/gorm"
)

// AuditRepository records admin and security relevant actions.
type AuditRepository interface {
	CreateAuditLog(userID *uint, action string, details string) error
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *auditRepo) CreateAuditLog(userID *uint, action string, details string) error {
	log := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	return r.db.Create(log).Error
}
