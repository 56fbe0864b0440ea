package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"github.com/smartresult/backend/internal/services"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db            *gorm.DB
	notifications *services.NotificationService
}

func NewNotificationHandler(db *gorm.DB, notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{db: db, notifications: notifications}
}

type SendNotificationRequest struct {
	StudentID string `json:"student_id"`
	ExamID    string `json:"exam_id"`
	Channel   string `json:"channel" binding:"required,oneof=email sms whatsapp"`
	Target    string `json:"target" binding:"required"`
	Message   string `json:"message"`
}

// Send dispatches one notification. When exam_id is given and no message is
// supplied, the standard results-published message for that exam is used.
func (h *NotificationHandler) Send(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var studentID *uuid.UUID
	if req.StudentID != "" {
		id, err := uuid.Parse(req.StudentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
			return
		}
		var student models.Student
		if err := h.db.Where("id = ? AND admin_id = ?", id, adminID).First(&student).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		studentID = &id
	}

	message := req.Message
	if message == "" && req.ExamID != "" {
		var exam models.Exam
		if err := h.db.Where("id = ? AND admin_id = ?", req.ExamID, adminID).First(&exam).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
			return
		}
		message = services.ResultsReadyMessage(exam.Name)
	}
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message or exam ID is required"})
		return
	}

	notification, err := h.notifications.Send(adminID, studentID, req.Channel, req.Target, message)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedChannel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

// List returns the admin's recent notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	var notifications []models.Notification
	if err := h.db.Where("admin_id = ?", adminID).
		Order("created_at DESC").Limit(100).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
