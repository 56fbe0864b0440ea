package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/models"
)

func TestStudentUpdate(t *testing.T) {
	t.Run("Duplicate register number conflicts", func(t *testing.T) {
		db := newTestDB(t)
		adminID := uuid.New()

		asha := models.Student{AdminID: adminID, RegisterNo: "R101", Name: "Asha Rao", DOB: "2010-04-12"}
		ravi := models.Student{AdminID: adminID, RegisterNo: "R102", Name: "Ravi Kumar", DOB: "2010-09-03"}
		for _, s := range []*models.Student{&asha, &ravi} {
			if err := db.Create(s).Error; err != nil {
				t.Fatalf("create student: %v", err)
			}
		}

		c, w := newAdminContext(t, "PUT", "/api/v1/students/"+ravi.ID.String(),
			strings.NewReader(`{"register_no": "R101"}`), adminID)
		c.Params = gin.Params{{Key: "id", Value: ravi.ID.String()}}
		NewStudentHandler(db).Update(c)

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409 (%s)", w.Code, w.Body.String())
		}

		var kept models.Student
		if err := db.First(&kept, "id = ?", ravi.ID).Error; err != nil {
			t.Fatalf("reload student: %v", err)
		}
		if kept.RegisterNo != "R102" {
			t.Errorf("register_no = %q, want unchanged R102", kept.RegisterNo)
		}
	})

	t.Run("Resubmitting own register number is fine", func(t *testing.T) {
		db := newTestDB(t)
		adminID := uuid.New()

		asha := models.Student{AdminID: adminID, RegisterNo: "R101", Name: "Asha Rao", DOB: "2010-04-12"}
		if err := db.Create(&asha).Error; err != nil {
			t.Fatalf("create student: %v", err)
		}

		c, w := newAdminContext(t, "PUT", "/api/v1/students/"+asha.ID.String(),
			strings.NewReader(`{"register_no": "R101", "name": "Asha R Rao"}`), adminID)
		c.Params = gin.Params{{Key: "id", Value: asha.ID.String()}}
		NewStudentHandler(db).Update(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
		}
	})
}
