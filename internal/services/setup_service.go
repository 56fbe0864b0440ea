package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

// SetupService provisions a freshly registered admin's workspace with the
// default exam type and subject catalog so the portal is usable immediately.
type SetupService struct {
	db *gorm.DB
}

func NewSetupService(db *gorm.DB) *SetupService {
	return &SetupService{db: db}
}

var defaultExamTypes = []string{"Unit Test", "Midterm", "Final"}

var defaultSubjects = []struct {
	Name     string
	MaxMarks float64
}{
	{"English", 100},
	{"Mathematics", 100},
	{"Science", 100},
	{"Social Studies", 100},
}

// ProvisionAdmin creates the default exam types and subjects for an admin.
// Idempotent: a scope that already has either is left untouched.
func (s *SetupService) ProvisionAdmin(adminID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.createExamTypes(tx, adminID); err != nil {
			return fmt.Errorf("failed to create exam types: %w", err)
		}
		if err := s.createSubjects(tx, adminID); err != nil {
			return fmt.Errorf("failed to create subjects: %w", err)
		}
		return nil
	})
}

func (s *SetupService) createExamTypes(tx *gorm.DB, adminID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.ExamType{}).Where("admin_id = ?", adminID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i, name := range defaultExamTypes {
		examType := models.ExamType{
			AdminID:    adminID,
			Name:       name,
			OrderIndex: i,
		}
		if err := tx.Create(&examType).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *SetupService) createSubjects(tx *gorm.DB, adminID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Subject{}).Where("admin_id = ?", adminID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, def := range defaultSubjects {
		subject := models.Subject{
			AdminID:  adminID,
			Name:     def.Name,
			MaxMarks: def.MaxMarks,
		}
		if err := tx.Create(&subject).Error; err != nil {
			return err
		}
	}
	return nil
}
