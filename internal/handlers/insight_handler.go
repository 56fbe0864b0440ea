package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartresult/backend/internal/insights"
	"gorm.io/gorm"
)

type InsightHandler struct {
	db *gorm.DB
}

func NewInsightHandler(db *gorm.DB) *InsightHandler {
	return &InsightHandler{db: db}
}

// latestScores returns the student's most recent published result per
// subject. Unpublished exams never contribute, mirroring the result views.
func (h *InsightHandler) latestScores(c *gin.Context) ([]insights.SubjectScore, bool) {
	studentID, ok := c.Get("principal_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	type scoredRow struct {
		SubjectName string
		Marks       float64
		MaxMarks    float64
	}
	var rows []scoredRow
	err := h.db.Table("results").
		Select(`subjects.name AS subject_name, results.marks_obtained AS marks,
			subjects.max_marks`).
		Joins("JOIN exams ON results.exam_id = exams.id").
		Joins("JOIN subjects ON results.subject_id = subjects.id").
		Where("results.student_id = ? AND exams.is_published = ?", studentID, true).
		Order("exams.exam_date ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	// Later exams overwrite earlier ones, keeping the newest score per subject
	latest := make(map[string]insights.SubjectScore, len(rows))
	order := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, seen := latest[r.SubjectName]; !seen {
			order = append(order, r.SubjectName)
		}
		latest[r.SubjectName] = insights.SubjectScore{
			Subject:  r.SubjectName,
			Marks:    r.Marks,
			MaxMarks: r.MaxMarks,
		}
	}

	scores := make([]insights.SubjectScore, 0, len(order))
	for _, name := range order {
		scores = append(scores, latest[name])
	}
	return scores, true
}

// MyFeedback returns canned per-subject feedback for the authenticated student
func (h *InsightHandler) MyFeedback(c *gin.Context) {
	scores, ok := h.latestScores(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": insights.BuildFeedback(scores)})
}

// MyPredictions returns simulated next-exam projections for the student
func (h *InsightHandler) MyPredictions(c *gin.Context) {
	scores, ok := h.latestScores(c)
	if !ok {
		return
	}
	gen := insights.NewGenerator(time.Now().UnixNano())
	c.JSON(http.StatusOK, gin.H{"predictions": gen.Predictions(scores)})
}
