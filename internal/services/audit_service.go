package services

import (
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Log(adminID uuid.UUID, action, resourceType string, resourceID uuid.UUID, before, after models.JSONB, ip string) error {
	entry := &models.AuditLog{
		ActorAdminID: adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Before:       before,
		After:        after,
		IP:           ip,
	}
	return s.db.Create(entry).Error
}
