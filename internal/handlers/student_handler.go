package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"github.com/smartresult/backend/internal/services"
	"gorm.io/gorm"
)

type StudentHandler struct {
	db           *gorm.DB
	auditService *services.AuditService
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		db:           db,
		auditService: services.NewAuditService(db),
	}
}

func (h *StudentHandler) List(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var students []models.Student
	if err := h.db.Where("admin_id = ?", adminID).Order("created_at DESC").Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *StudentHandler) Create(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var req struct {
		RegisterNo string `json:"register_no" binding:"required"`
		Name       string `json:"name" binding:"required"`
		DOB        string `json:"dob" binding:"required"`
		Class      string `json:"class"`
		Section    string `json:"section"`
		Email      string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Student
	if err := h.db.Where("admin_id = ? AND register_no = ?", adminID, req.RegisterNo).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Register number already in use"})
		return
	}

	student := models.Student{
		AdminID:    adminID,
		RegisterNo: req.RegisterNo,
		Name:       req.Name,
		DOB:        req.DOB,
		Class:      req.Class,
		Section:    req.Section,
		Email:      req.Email,
	}
	if err := h.db.Create(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Log(adminID, "CREATE", "student", student.ID, nil,
		models.JSONB{"name": student.Name, "register_no": student.RegisterNo}, c.ClientIP())

	c.JSON(http.StatusCreated, gin.H{"student": student})
}

func (h *StudentHandler) Get(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var student models.Student
	if err := h.db.Where("id = ? AND admin_id = ?", c.Param("id"), adminID).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": student})
}

func (h *StudentHandler) Update(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var student models.Student
	if err := h.db.Where("id = ? AND admin_id = ?", c.Param("id"), adminID).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var req struct {
		RegisterNo string `json:"register_no"`
		Name       string `json:"name"`
		DOB        string `json:"dob"`
		Class      string `json:"class"`
		Section    string `json:"section"`
		Email      string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.RegisterNo != "" && req.RegisterNo != student.RegisterNo {
		var existing models.Student
		if err := h.db.Where("admin_id = ? AND register_no = ? AND id <> ?",
			adminID, req.RegisterNo, student.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Register number already in use"})
			return
		}
		student.RegisterNo = req.RegisterNo
	}
	if req.Name != "" {
		student.Name = req.Name
	}
	if req.DOB != "" {
		student.DOB = req.DOB
	}
	if req.Class != "" {
		student.Class = req.Class
	}
	if req.Section != "" {
		student.Section = req.Section
	}
	if req.Email != "" {
		student.Email = req.Email
	}

	if err := h.db.Save(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student})
}

func (h *StudentHandler) Delete(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var student models.Student
	if err := h.db.Where("id = ? AND admin_id = ?", c.Param("id"), adminID).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if err := h.db.Delete(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.auditService.Log(adminID, "DELETE", "student", student.ID,
		models.JSONB{"name": student.Name}, nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
}
