package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ScopeMiddleware pins every request to one admin's data. The admin scope
// comes from the verified token claims, never from request parameters, so a
// principal cannot read or write another school's records.
func ScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminIDStr := c.GetString("admin_id")
		if adminIDStr == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: no admin scope"})
			c.Abort()
			return
		}

		adminID, err := uuid.Parse(adminIDStr)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid admin scope"})
			c.Abort()
			return
		}

		c.Set("scope_admin_id", adminID)
		c.Next()
	}
}

// ScopeAdminID returns the admin scope set by ScopeMiddleware
func ScopeAdminID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get("scope_admin_id"); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
