package reports

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestStudentPerformance(t *testing.T) {
	asha := uuid.New()
	ravi := uuid.New()

	t.Run("Aggregates per student", func(t *testing.T) {
		out := StudentPerformance([]ResultRecord{
			{StudentID: asha, StudentName: "Asha Rao", RegisterNo: "R101", SubjectName: "Maths", Marks: 80, MaxMarks: 100},
			{StudentID: asha, StudentName: "Asha Rao", RegisterNo: "R101", SubjectName: "Physics", Marks: 60, MaxMarks: 100},
			{StudentID: ravi, StudentName: "Ravi Kumar", RegisterNo: "R102", SubjectName: "Maths", Marks: 45, MaxMarks: 100},
		})

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "Student Name,Register No,Total Exams,Average Score %,Grade" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if lines[1] != `"Asha Rao","R101",2,70.00,B` {
			t.Errorf("unexpected Asha row: %s", lines[1])
		}
		if lines[2] != `"Ravi Kumar","R102",1,45.00,F` {
			t.Errorf("unexpected Ravi row: %s", lines[2])
		}
	})

	t.Run("Empty input yields header only", func(t *testing.T) {
		out := StudentPerformance(nil)
		if out != "Student Name,Register No,Total Exams,Average Score %,Grade\n" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("Comma in name stays in one field", func(t *testing.T) {
		out := StudentPerformance([]ResultRecord{
			{StudentID: asha, StudentName: "Rao, Asha", RegisterNo: "R101", Marks: 50, MaxMarks: 100},
		})
		if !strings.Contains(out, `"Rao, Asha","R101",1,50.00,D`) {
			t.Errorf("comma corrupted row structure: %q", out)
		}
	})
}

func TestSubjectWise(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()

	t.Run("Mean of raw marks and distinct students", func(t *testing.T) {
		out := SubjectWise([]ResultRecord{
			{StudentID: s1, SubjectName: "Maths", Marks: 90},
			{StudentID: s2, SubjectName: "Maths", Marks: 70},
			{StudentID: s1, SubjectName: "Physics", Marks: 55},
		})

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
		}
		if lines[1] != `"Maths",80.00,A,2` {
			t.Errorf("unexpected Maths row: %s", lines[1])
		}
		if lines[2] != `"Physics",55.00,D,1` {
			t.Errorf("unexpected Physics row: %s", lines[2])
		}
	})

	t.Run("Same student across two exams counts once", func(t *testing.T) {
		out := SubjectWise([]ResultRecord{
			{StudentID: s1, SubjectName: "Maths", Marks: 60},
			{StudentID: s1, SubjectName: "Maths", Marks: 80},
		})
		if !strings.Contains(out, `"Maths",70.00,B,1`) {
			t.Errorf("expected one distinct student, got: %q", out)
		}
	})

	t.Run("Empty input yields header only", func(t *testing.T) {
		out := SubjectWise(nil)
		if out != "Subject,Average Score %,Grade,Total Students Appeared\n" {
			t.Errorf("unexpected output: %q", out)
		}
	})
}

func TestGradeDistribution(t *testing.T) {
	t.Run("Counts stored grades uppercased", func(t *testing.T) {
		out := GradeDistribution([]ResultRecord{
			{Grade: "A"},
			{Grade: "a"},
			{Grade: "B"},
			{Grade: "F"},
			{Grade: ""},
		})
		want := "Grade,Count\nA,2\nB,1\nF,2\n"
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("Empty input yields header only", func(t *testing.T) {
		if out := GradeDistribution(nil); out != "Grade,Count\n" {
			t.Errorf("unexpected output: %q", out)
		}
	})
}
