package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/grading"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

type RankingHandler struct {
	db *gorm.DB
}

func NewRankingHandler(db *gorm.DB) *RankingHandler {
	return &RankingHandler{db: db}
}

// List computes the leaderboard on demand over every result in the admin's
// scope. Totals, percentages and badges accumulate across all exams; an
// examId query narrows the input to one exam. Every student is ranked,
// including those with no results, and enrollment order (creation time)
// breaks ties deterministically.
func (h *RankingHandler) List(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	resultQuery := h.db.Where("admin_id = ?", adminID)
	if raw := c.Query("examId"); raw != "" {
		examID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exam ID"})
			return
		}
		var exam models.Exam
		if err := h.db.Where("id = ? AND admin_id = ?", examID, adminID).First(&exam).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
			return
		}
		resultQuery = resultQuery.Where("exam_id = ?", examID)
	}

	var students []models.Student
	if err := h.db.Where("admin_id = ?", adminID).
		Order("created_at ASC").Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var results []models.Result
	if err := resultQuery.Find(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rankings": grading.Rank(buildCohort(students, results)),
	})
}

// buildCohort groups result marks per student, preserving the students'
// order. Students without a single result still get an entry.
func buildCohort(students []models.Student, results []models.Result) []grading.StudentScores {
	marksByStudent := make(map[uuid.UUID][]float64, len(students))
	for _, r := range results {
		marksByStudent[r.StudentID] = append(marksByStudent[r.StudentID], r.MarksObtained)
	}

	cohort := make([]grading.StudentScores, 0, len(students))
	for _, s := range students {
		cohort = append(cohort, grading.StudentScores{
			StudentID:  s.ID,
			Name:       s.Name,
			RegisterNo: s.RegisterNo,
			Marks:      marksByStudent[s.ID],
		})
	}
	return cohort
}
