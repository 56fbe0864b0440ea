package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats godoc
// @Summary Admin dashboard counters and grade distribution
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var studentCount, subjectCount, examCount, publishedCount, resultCount int64
	h.db.Model(&models.Student{}).Where("admin_id = ?", adminID).Count(&studentCount)
	h.db.Model(&models.Subject{}).Where("admin_id = ?", adminID).Count(&subjectCount)
	h.db.Model(&models.Exam{}).Where("admin_id = ?", adminID).Count(&examCount)
	h.db.Model(&models.Exam{}).Where("admin_id = ? AND is_published = ?", adminID, true).Count(&publishedCount)
	h.db.Model(&models.Result{}).Where("admin_id = ?", adminID).Count(&resultCount)

	type gradeCount struct {
		Grade string `json:"grade"`
		Count int64  `json:"count"`
	}
	var grades []gradeCount
	if err := h.db.Model(&models.Result{}).
		Select("grade, COUNT(*) AS count").
		Where("admin_id = ?", adminID).
		Group("grade").Order("grade ASC").
		Scan(&grades).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students":           studentCount,
		"subjects":           subjectCount,
		"exams":              examCount,
		"published_exams":    publishedCount,
		"results":            resultCount,
		"grade_distribution": grades,
	})
}
