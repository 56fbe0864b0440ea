package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartresult/backend/internal/grading"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

type SubjectHandler struct {
	db *gorm.DB
}

func NewSubjectHandler(db *gorm.DB) *SubjectHandler {
	return &SubjectHandler{db: db}
}

func (h *SubjectHandler) List(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var subjects []models.Subject
	if err := h.db.Where("admin_id = ?", adminID).Order("created_at DESC").Find(&subjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

func (h *SubjectHandler) Create(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var req struct {
		Name     string  `json:"name" binding:"required"`
		MaxMarks float64 `json:"max_marks" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject := models.Subject{
		AdminID:  adminID,
		Name:     req.Name,
		MaxMarks: req.MaxMarks,
	}
	if err := h.db.Create(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subject": subject})
}

func (h *SubjectHandler) Update(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var subject models.Subject
	if err := h.db.Where("id = ? AND admin_id = ?", c.Param("id"), adminID).First(&subject).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
		return
	}

	var req struct {
		Name     string  `json:"name"`
		MaxMarks float64 `json:"max_marks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	maxChanged := req.MaxMarks > 0 && req.MaxMarks != subject.MaxMarks
	if req.Name != "" {
		subject.Name = req.Name
	}
	if req.MaxMarks > 0 {
		subject.MaxMarks = req.MaxMarks
	}

	// A new denominator invalidates the stored grades of every result in
	// this subject, so they are recomputed in the same transaction.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&subject).Error; err != nil {
			return err
		}
		if !maxChanged {
			return nil
		}

		var results []models.Result
		if err := tx.Where("subject_id = ? AND admin_id = ?", subject.ID, adminID).Find(&results).Error; err != nil {
			return err
		}
		for i := range results {
			grade := grading.GradeFor(results[i].MarksObtained, subject.MaxMarks)
			if grade == results[i].Grade {
				continue
			}
			if err := tx.Model(&results[i]).Update("grade", grade).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subject": subject})
}
