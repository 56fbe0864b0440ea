package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/models"
)

func TestSubjectUpdate(t *testing.T) {
	t.Run("Regrades existing results when max marks change", func(t *testing.T) {
		db := newTestDB(t)
		adminID := uuid.New()

		subject := models.Subject{AdminID: adminID, Name: "Maths", MaxMarks: 100}
		if err := db.Create(&subject).Error; err != nil {
			t.Fatalf("create subject: %v", err)
		}
		examType := models.ExamType{AdminID: adminID, Name: "Midterm"}
		if err := db.Create(&examType).Error; err != nil {
			t.Fatalf("create exam type: %v", err)
		}
		exam := models.Exam{AdminID: adminID, ExamTypeID: examType.ID, Name: "Midterm 2026", ExamDate: time.Now()}
		if err := db.Create(&exam).Error; err != nil {
			t.Fatalf("create exam: %v", err)
		}
		student := models.Student{AdminID: adminID, RegisterNo: "R101", Name: "Asha Rao", DOB: "2010-04-12"}
		if err := db.Create(&student).Error; err != nil {
			t.Fatalf("create student: %v", err)
		}
		result := models.Result{
			AdminID: adminID, ExamID: exam.ID, StudentID: student.ID,
			SubjectID: subject.ID, MarksObtained: 75, Grade: "B",
		}
		if err := db.Create(&result).Error; err != nil {
			t.Fatalf("create result: %v", err)
		}

		c, w := newAdminContext(t, "PUT", "/api/v1/subjects/"+subject.ID.String(),
			strings.NewReader(`{"max_marks": 150}`), adminID)
		c.Params = gin.Params{{Key: "id", Value: subject.ID.String()}}
		NewSubjectHandler(db).Update(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
		}

		var updated models.Result
		if err := db.First(&updated, "id = ?", result.ID).Error; err != nil {
			t.Fatalf("reload result: %v", err)
		}
		// 75 of 150 is 50 percent
		if updated.Grade != "D" {
			t.Errorf("grade after denominator change = %q, want D", updated.Grade)
		}
	})

	t.Run("Name-only update leaves grades alone", func(t *testing.T) {
		db := newTestDB(t)
		adminID := uuid.New()

		subject := models.Subject{AdminID: adminID, Name: "Maths", MaxMarks: 100}
		if err := db.Create(&subject).Error; err != nil {
			t.Fatalf("create subject: %v", err)
		}
		result := models.Result{
			AdminID: adminID, ExamID: uuid.New(), StudentID: uuid.New(),
			SubjectID: subject.ID, MarksObtained: 75, Grade: "B",
		}
		if err := db.Create(&result).Error; err != nil {
			t.Fatalf("create result: %v", err)
		}

		c, w := newAdminContext(t, "PUT", "/api/v1/subjects/"+subject.ID.String(),
			strings.NewReader(`{"name": "Mathematics"}`), adminID)
		c.Params = gin.Params{{Key: "id", Value: subject.ID.String()}}
		NewSubjectHandler(db).Update(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
		}

		var kept models.Result
		if err := db.First(&kept, "id = ?", result.ID).Error; err != nil {
			t.Fatalf("reload result: %v", err)
		}
		if kept.Grade != "B" {
			t.Errorf("grade = %q, want B untouched", kept.Grade)
		}
	})
}
