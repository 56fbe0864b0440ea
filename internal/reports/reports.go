// Package reports builds the downloadable delimited-text reports from an
// admin's full result set. The builders are pure: they accept already-fetched
// records, never touch storage, and degrade to a header-only document when
// there is no data.
package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/smartresult/backend/internal/grading"
)

// ResultRecord is one result row joined with its student and subject
type ResultRecord struct {
	StudentID   uuid.UUID
	StudentName string
	RegisterNo  string
	SubjectName string
	Marks       float64
	MaxMarks    float64
	Grade       string
}

// StudentPerformance produces one row per distinct student appearing in the
// results: name, register no, exam count, average score percentage and the
// overall grade for that average.
func StudentPerformance(results []ResultRecord) string {
	var b strings.Builder
	b.WriteString("Student Name,Register No,Total Exams,Average Score %,Grade\n")

	type perStudent struct {
		name       string
		registerNo string
		scores     []grading.ScoredResult
	}

	byStudent := map[uuid.UUID]*perStudent{}
	var order []uuid.UUID
	for _, r := range results {
		s, ok := byStudent[r.StudentID]
		if !ok {
			s = &perStudent{name: r.StudentName, registerNo: r.RegisterNo}
			byStudent[r.StudentID] = s
			order = append(order, r.StudentID)
		}
		s.scores = append(s.scores, grading.ScoredResult{MarksObtained: r.Marks, MaxMarks: r.MaxMarks})
	}

	for _, id := range order {
		s := byStudent[id]
		agg := grading.Aggregate(s.scores)
		b.WriteString(fmt.Sprintf("%s,%s,%d,%.2f,%s\n",
			quote(s.name), quote(s.registerNo), len(s.scores), agg.Percentage, agg.Grade))
	}
	return b.String()
}

// SubjectWise produces one row per distinct subject: the arithmetic mean of
// marks obtained (not percentage-normalized), its grade, and how many
// distinct students appeared for the subject.
func SubjectWise(results []ResultRecord) string {
	var b strings.Builder
	b.WriteString("Subject,Average Score %,Grade,Total Students Appeared\n")

	type perSubject struct {
		total    float64
		count    int
		students map[uuid.UUID]struct{}
	}

	bySubject := map[string]*perSubject{}
	var order []string
	for _, r := range results {
		s, ok := bySubject[r.SubjectName]
		if !ok {
			s = &perSubject{students: map[uuid.UUID]struct{}{}}
			bySubject[r.SubjectName] = s
			order = append(order, r.SubjectName)
		}
		s.total += r.Marks
		s.count++
		s.students[r.StudentID] = struct{}{}
	}

	for _, name := range order {
		s := bySubject[name]
		avg := s.total / float64(s.count)
		b.WriteString(fmt.Sprintf("%s,%.2f,%s,%d\n",
			quote(name), avg, grading.Classify(avg), len(s.students)))
	}
	return b.String()
}

// GradeDistribution counts the grades already stored on the result records
// (uppercased, not recomputed) and emits one row per grade present, best
// grade first.
func GradeDistribution(results []ResultRecord) string {
	var b strings.Builder
	b.WriteString("Grade,Count\n")

	counts := map[string]int{}
	for _, r := range results {
		g := strings.ToUpper(r.Grade)
		if g == "" {
			g = grading.GradeF
		}
		counts[g]++
	}

	var grades []string
	for g := range counts {
		grades = append(grades, g)
	}
	sort.Strings(grades)

	for _, g := range grades {
		b.WriteString(fmt.Sprintf("%s,%d\n", g, counts[g]))
	}
	return b.String()
}

// quote wraps a field in double quotes so an embedded comma cannot split the
// row; embedded quotes are doubled per RFC 4180.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
