package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/grading"
	"github.com/smartresult/backend/internal/models"
	"gorm.io/gorm"
)

type rankingResponse struct {
	Rankings []grading.RankingEntry `json:"rankings"`
}

func seedRankingFixture(t *testing.T, db *gorm.DB, adminID uuid.UUID) (asha, ravi models.Student, midterm models.Exam) {
	t.Helper()

	examType := models.ExamType{AdminID: adminID, Name: "Midterm", OrderIndex: 0}
	if err := db.Create(&examType).Error; err != nil {
		t.Fatalf("create exam type: %v", err)
	}

	maths := models.Subject{AdminID: adminID, Name: "Maths", MaxMarks: 100}
	physics := models.Subject{AdminID: adminID, Name: "Physics", MaxMarks: 100}
	for _, s := range []*models.Subject{&maths, &physics} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("create subject: %v", err)
		}
	}

	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	asha = models.Student{
		BaseModel:  models.BaseModel{CreatedAt: base},
		AdminID:    adminID,
		RegisterNo: "R101",
		Name:       "Asha Rao",
		DOB:        "2010-04-12",
	}
	ravi = models.Student{
		BaseModel:  models.BaseModel{CreatedAt: base.Add(time.Minute)},
		AdminID:    adminID,
		RegisterNo: "R102",
		Name:       "Ravi Kumar",
		DOB:        "2010-09-03",
	}
	for _, s := range []*models.Student{&asha, &ravi} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("create student: %v", err)
		}
	}

	midterm = models.Exam{AdminID: adminID, ExamTypeID: examType.ID, Name: "Midterm 2026", ExamDate: base}
	final := models.Exam{AdminID: adminID, ExamTypeID: examType.ID, Name: "Final 2026", ExamDate: base.AddDate(0, 3, 0)}
	for _, e := range []*models.Exam{&midterm, &final} {
		if err := db.Create(e).Error; err != nil {
			t.Fatalf("create exam: %v", err)
		}
	}

	results := []models.Result{
		{AdminID: adminID, ExamID: midterm.ID, StudentID: asha.ID, SubjectID: maths.ID, MarksObtained: 80, Grade: "A"},
		{AdminID: adminID, ExamID: final.ID, StudentID: asha.ID, SubjectID: maths.ID, MarksObtained: 90, Grade: "A"},
		{AdminID: adminID, ExamID: final.ID, StudentID: asha.ID, SubjectID: physics.ID, MarksObtained: 70, Grade: "B"},
		{AdminID: adminID, ExamID: midterm.ID, StudentID: ravi.ID, SubjectID: maths.ID, MarksObtained: 90, Grade: "A"},
	}
	for i := range results {
		if err := db.Create(&results[i]).Error; err != nil {
			t.Fatalf("create result: %v", err)
		}
	}
	return asha, ravi, midterm
}

func TestRankingList(t *testing.T) {
	t.Run("Accumulates totals across all exams", func(t *testing.T) {
		db := newTestDB(t)
		adminID := uuid.New()
		asha, ravi, _ := seedRankingFixture(t, db, adminID)

		c, w := newAdminContext(t, "GET", "/api/v1/rankings", nil, adminID)
		NewRankingHandler(db).List(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
		}
		var resp rankingResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Rankings) != 2 {
			t.Fatalf("got %d entries, want 2", len(resp.Rankings))
		}

		first := resp.Rankings[0]
		if first.StudentID != asha.ID || first.Rank != 1 {
			t.Errorf("rank 1 = %s (%d), want Asha first", first.Name, first.Rank)
		}
		if first.TotalMarks != 240 {
			t.Errorf("Asha total = %v, want 240 across both exams", first.TotalMarks)
		}
		if first.Badges != 1 {
			t.Errorf("Asha badges = %d, want 1 for three results", first.Badges)
		}
		if first.Percentage != 80 {
			t.Errorf("Asha percentage = %d, want 80", first.Percentage)
		}

		second := resp.Rankings[1]
		if second.StudentID != ravi.ID || second.TotalMarks != 90 {
			t.Errorf("rank 2 = %s with %v marks, want Ravi with 90", second.Name, second.TotalMarks)
		}
	})

	t.Run("Optional examId narrows to one exam", func(t *testing.T) {
		db := newTestDB(t)
		adminID := uuid.New()
		_, ravi, midterm := seedRankingFixture(t, db, adminID)

		c, w := newAdminContext(t, "GET", "/api/v1/rankings?examId="+midterm.ID.String(), nil, adminID)
		NewRankingHandler(db).List(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
		}
		var resp rankingResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Rankings) != 2 {
			t.Fatalf("got %d entries, want 2", len(resp.Rankings))
		}
		if resp.Rankings[0].StudentID != ravi.ID || resp.Rankings[0].TotalMarks != 90 {
			t.Errorf("midterm rank 1 = %s with %v marks, want Ravi with 90", resp.Rankings[0].Name, resp.Rankings[0].TotalMarks)
		}
	})

	t.Run("Unknown examId rejected", func(t *testing.T) {
		db := newTestDB(t)
		adminID := uuid.New()

		c, w := newAdminContext(t, "GET", "/api/v1/rankings?examId="+uuid.NewString(), nil, adminID)
		NewRankingHandler(db).List(c)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}
