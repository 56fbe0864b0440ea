package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/reports"
	"gorm.io/gorm"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// loadRecords fetches the flattened result rows a report is built from,
// scoped to the calling admin and optionally restricted to one exam.
func (h *ReportHandler) loadRecords(c *gin.Context) ([]reports.ResultRecord, error) {
	adminID := middleware.ScopeAdminID(c)

	query := h.db.Table("results").
		Select(`results.student_id, students.name AS student_name,
			students.register_no, subjects.name AS subject_name,
			results.marks_obtained AS marks, subjects.max_marks, results.grade`).
		Joins("JOIN students ON results.student_id = students.id").
		Joins("JOIN subjects ON results.subject_id = subjects.id").
		Where("results.admin_id = ?", adminID).
		Order("students.created_at ASC, results.created_at ASC")

	if examID := c.Query("examId"); examID != "" {
		query = query.Where("results.exam_id = ?", examID)
	}

	var records []reports.ResultRecord
	if err := query.Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func serveCSV(c *gin.Context, name, payload string) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(payload))
}

// StudentPerformance godoc
// @Summary Download the student performance report
// @Tags reports
// @Produce text/csv
// @Param examId query string false "Restrict to one exam"
// @Security BearerAuth
// @Success 200 {string} string "CSV payload"
// @Router /api/v1/reports/students [get]
func (h *ReportHandler) StudentPerformance(c *gin.Context) {
	records, err := h.loadRecords(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	serveCSV(c, "student_performance", reports.StudentPerformance(records))
}

// SubjectWise godoc
// @Summary Download the subject-wise performance report
// @Tags reports
// @Produce text/csv
// @Param examId query string false "Restrict to one exam"
// @Security BearerAuth
// @Success 200 {string} string "CSV payload"
// @Router /api/v1/reports/subjects [get]
func (h *ReportHandler) SubjectWise(c *gin.Context) {
	records, err := h.loadRecords(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	serveCSV(c, "subject_performance", reports.SubjectWise(records))
}

// GradeDistribution godoc
// @Summary Download the grade distribution report
// @Tags reports
// @Produce text/csv
// @Param examId query string false "Restrict to one exam"
// @Security BearerAuth
// @Success 200 {string} string "CSV payload"
// @Router /api/v1/reports/grades [get]
func (h *ReportHandler) GradeDistribution(c *gin.Context) {
	records, err := h.loadRecords(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	serveCSV(c, "grade_distribution", reports.GradeDistribution(records))
}
