package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"github.com/smartresult/backend/internal/services"
	"gorm.io/gorm"
)

type ExamHandler struct {
	db           *gorm.DB
	auditService *services.AuditService
}

func NewExamHandler(db *gorm.DB) *ExamHandler {
	return &ExamHandler{
		db:           db,
		auditService: services.NewAuditService(db),
	}
}

func (h *ExamHandler) ListTypes(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var types []models.ExamType
	if err := h.db.Where("admin_id = ?", adminID).Order("order_index ASC").Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exam_types": types})
}

func (h *ExamHandler) CreateType(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var req struct {
		Name       string `json:"name" binding:"required"`
		OrderIndex int    `json:"order_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	examType := models.ExamType{
		AdminID:    adminID,
		Name:       req.Name,
		OrderIndex: req.OrderIndex,
	}
	if err := h.db.Create(&examType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"exam_type": examType})
}

func (h *ExamHandler) List(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var exams []models.Exam
	if err := h.db.Preload("ExamType").Where("admin_id = ?", adminID).
		Order("created_at DESC").Find(&exams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exams": exams})
}

func (h *ExamHandler) Create(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var req struct {
		ExamTypeID string `json:"exam_type_id" binding:"required"`
		Name       string `json:"name" binding:"required"`
		ExamDate   string `json:"exam_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	examTypeID, err := uuid.Parse(req.ExamTypeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exam type ID"})
		return
	}

	var examType models.ExamType
	if err := h.db.Where("id = ? AND admin_id = ?", examTypeID, adminID).First(&examType).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exam type not found"})
		return
	}

	examDate, err := time.Parse("2006-01-02", req.ExamDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exam date, expected YYYY-MM-DD"})
		return
	}

	// Exams always start unpublished
	exam := models.Exam{
		AdminID:     adminID,
		ExamTypeID:  examTypeID,
		Name:        req.Name,
		ExamDate:    examDate,
		IsPublished: false,
	}
	if err := h.db.Create(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"exam": exam})
}

// Publish flips an exam to published and stamps the publish date. The
// transition is one-way: there is no unpublish. Publishing an already
// published exam just refreshes the timestamp.
func (h *ExamHandler) Publish(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var exam models.Exam
	if err := h.db.Where("id = ? AND admin_id = ?", c.Param("id"), adminID).First(&exam).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		return
	}

	now := time.Now()
	exam.IsPublished = true
	exam.PublishDate = &now
	if err := h.db.Save(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Log(adminID, "PUBLISH", "exam", exam.ID, nil,
		models.JSONB{"name": exam.Name}, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"exam": exam})
}
