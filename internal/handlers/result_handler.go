package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/grading"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

type ResultHandler struct {
	db *gorm.DB
}

func NewResultHandler(db *gorm.DB) *ResultHandler {
	return &ResultHandler{db: db}
}

// CreateOrUpdate upserts a result for one (exam, student, subject) triple.
// The grade is always recomputed from the marks and the subject's max marks;
// a second write to the same triple overwrites the first.
func (h *ResultHandler) CreateOrUpdate(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var req struct {
		ExamID        string   `json:"exam_id" binding:"required"`
		StudentID     string   `json:"student_id" binding:"required"`
		SubjectID     string   `json:"subject_id" binding:"required"`
		MarksObtained *float64 `json:"marks_obtained" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if *req.MarksObtained < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Marks obtained must not be negative"})
		return
	}

	examID, err := uuid.Parse(req.ExamID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exam ID"})
		return
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject ID"})
		return
	}

	// All three referenced records must belong to the caller's scope
	var exam models.Exam
	if err := h.db.Where("id = ? AND admin_id = ?", examID, adminID).First(&exam).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		return
	}
	var student models.Student
	if err := h.db.Where("id = ? AND admin_id = ?", studentID, adminID).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	var subject models.Subject
	if err := h.db.Where("id = ? AND admin_id = ?", subjectID, adminID).First(&subject).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
		return
	}

	grade := grading.GradeFor(*req.MarksObtained, subject.MaxMarks)

	var result models.Result
	err = h.db.Where("exam_id = ? AND student_id = ? AND subject_id = ?",
		examID, studentID, subjectID).First(&result).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		result = models.Result{
			AdminID:       adminID,
			ExamID:        examID,
			StudentID:     studentID,
			SubjectID:     subjectID,
			MarksObtained: *req.MarksObtained,
			Grade:         grade,
		}
		if err := h.db.Create(&result).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"result": result})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		result.MarksObtained = *req.MarksObtained
		result.Grade = grade
		if err := h.db.Save(&result).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": result})
	}
}

// List returns all results in the admin's scope, optionally filtered by exam
func (h *ResultHandler) List(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	query := h.db.Preload("Subject").Preload("Student").Where("admin_id = ?", adminID)
	if examID := c.Query("examId"); examID != "" {
		query = query.Where("exam_id = ?", examID)
	}

	var results []models.Result
	if err := query.Find(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *ResultHandler) Delete(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	if err := h.db.Where("id = ? AND admin_id = ?", c.Param("id"), adminID).
		Delete(&models.Result{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Result deleted"})
}

// StudentResult is a published result joined with exam and subject details
type StudentResult struct {
	ID            uuid.UUID `json:"id"`
	ExamID        uuid.UUID `json:"exam_id"`
	ExamName      string    `json:"exam_name"`
	ExamDate      time.Time `json:"exam_date"`
	SubjectID     uuid.UUID `json:"subject_id"`
	SubjectName   string    `json:"subject_name"`
	MarksObtained float64   `json:"marks_obtained"`
	MaxMarks      float64   `json:"max_marks"`
	Grade         string    `json:"grade"`
}

// MyResults returns the authenticated student's results. Only results whose
// exam is published are ever visible here; draft exams yield nothing.
func (h *ResultHandler) MyResults(c *gin.Context) {
	studentID, ok := c.Get("principal_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var results []StudentResult
	err := h.db.Table("results").
		Select(`results.id, results.exam_id, exams.name AS exam_name, exams.exam_date,
			results.subject_id, subjects.name AS subject_name,
			results.marks_obtained, subjects.max_marks, results.grade`).
		Joins("JOIN exams ON results.exam_id = exams.id").
		Joins("JOIN subjects ON results.subject_id = subjects.id").
		Where("results.student_id = ? AND exams.is_published = ?", studentID, true).
		Order("exams.exam_date DESC").
		Scan(&results).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
