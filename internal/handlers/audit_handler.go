package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smartresult/backend/internal/middleware"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

type AuditHandler struct {
	db *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{db: db}
}

// Recent returns the admin's latest audit entries, newest first
func (h *AuditHandler) Recent(c *gin.Context) {
	adminID := middleware.ScopeAdminID(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var entries []models.AuditLog
	if err := h.db.Where("actor_admin_id = ?", adminID).
		Order("timestamp DESC").Limit(limit).
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit": entries})
}
