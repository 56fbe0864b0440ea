package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

type VerifyHandler struct {
	db *gorm.DB
}

func NewVerifyHandler(db *gorm.DB) *VerifyHandler {
	return &VerifyHandler{db: db}
}

// Verify godoc
// @Summary Publicly verify that an exam's results are published
// @Tags public
// @Produce json
// @Param examId path string true "Exam ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /verify/{examId} [get]
func (h *VerifyHandler) Verify(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("examId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exam ID"})
		return
	}

	var exam models.Exam
	err = h.db.Where("id = ? AND is_published = ?", examID, true).
		First(&exam).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"verified": false,
			"message":  "No published exam found for this ID",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verified":     true,
		"exam_name":    exam.Name,
		"exam_date":    exam.ExamDate,
		"publish_date": exam.PublishDate,
	})
}
