package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/models"
	"github.com/smartresult/backend/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. The
// pool is pinned to one connection so every query sees the same memory DB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Admin{},
		&models.Student{},
		&models.ExamType{},
		&models.Exam{},
		&models.Subject{},
		&models.Result{},
		&models.Notification{},
		&models.AuditLog{},
		&models.RefreshToken{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newAdminContext builds a gin test context carrying the claims and scope
// the auth and scope middleware would have set for an admin request.
func newAdminContext(t *testing.T, method, target string, body io.Reader, adminID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req

	c.Set("principal_id", adminID)
	c.Set("admin_id", adminID.String())
	c.Set("role", services.RoleAdmin)
	c.Set("scope_admin_id", adminID)
	return c, w
}
