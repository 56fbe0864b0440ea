package grading

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Grade letters, best to worst
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeF = "F"
)

// DefaultMaxMarks is the fallback denominator when a subject's max marks is
// zero or unknown
const DefaultMaxMarks = 100

// Classify maps a percentage to a letter grade. This is the single grade
// threshold table for the whole system: result entry, dashboard statistics,
// reports and insights all grade through here.
func Classify(percentage float64) string {
	switch {
	case percentage >= 80:
		return GradeA
	case percentage >= 70:
		return GradeB
	case percentage >= 60:
		return GradeC
	case percentage >= 50:
		return GradeD
	default:
		return GradeF
	}
}

// ResolveMaxMarks returns the usable denominator for a subject's max marks.
// A zero or negative value falls back to DefaultMaxMarks instead of
// producing a division by zero downstream.
func ResolveMaxMarks(maxMarks float64) float64 {
	if maxMarks <= 0 {
		return DefaultMaxMarks
	}
	return maxMarks
}

// GradeFor computes the grade for a single result from its marks and the
// owning subject's max marks.
func GradeFor(marksObtained, maxMarks float64) string {
	return Classify(marksObtained / ResolveMaxMarks(maxMarks) * 100)
}

// ScoredResult is one result's marks paired with its subject's max marks
type ScoredResult struct {
	MarksObtained float64
	MaxMarks      float64
}

// StudentAggregate is a student's summed performance over a set of results
type StudentAggregate struct {
	TotalMarks    float64 `json:"total_marks"`
	TotalMaxMarks float64 `json:"total_max_marks"`
	Percentage    float64 `json:"percentage"`
	Grade         string  `json:"grade"`
	ResultCount   int     `json:"result_count"`
}

// Aggregate sums a student's results into a StudentAggregate. Input order
// does not affect the output. An empty input yields a zero aggregate with
// grade F rather than an error.
func Aggregate(results []ScoredResult) StudentAggregate {
	agg := StudentAggregate{Grade: GradeF, ResultCount: len(results)}
	for _, r := range results {
		agg.TotalMarks += r.MarksObtained
		agg.TotalMaxMarks += ResolveMaxMarks(r.MaxMarks)
	}
	if agg.TotalMaxMarks > 0 {
		agg.Percentage = agg.TotalMarks / agg.TotalMaxMarks * 100
	}
	agg.Grade = Classify(agg.Percentage)
	if len(results) == 0 {
		agg.Grade = GradeF
	}
	return agg
}

// StudentScores is the ranking engine's input: one student and the marks
// obtained across all of their results, cohort-wide.
type StudentScores struct {
	StudentID  uuid.UUID
	Name       string
	RegisterNo string
	Marks      []float64
}

// RankingEntry is one row of a cohort leaderboard
type RankingEntry struct {
	Rank       int       `json:"rank"`
	StudentID  uuid.UUID `json:"student_id"`
	Name       string    `json:"name"`
	RegisterNo string    `json:"register_no"`
	TotalMarks float64   `json:"total_marks"`
	Percentage int       `json:"percentage"`
	Badges     int       `json:"badges"`
}

// Rank produces a dense ordinal leaderboard over a cohort: total marks
// descending, ranks 1..N with no gaps and no shared ranks. The sort is
// stable, so students with equal totals keep their input order; callers
// supply students in a deterministic order (creation time) to make the
// overall ordering reproducible. Students with zero results are still
// ranked, with percentage 0 and badges 0.
//
// The percentage denominator is result_count * 100, which assumes every
// subject is marked out of 100. Subjects with a different denominator skew
// this figure; it is kept as-is for parity with the established reports.
func Rank(students []StudentScores) []RankingEntry {
	entries := make([]RankingEntry, 0, len(students))
	for _, s := range students {
		total := 0.0
		for _, m := range s.Marks {
			total += m
		}
		pct := 0
		if len(s.Marks) > 0 {
			pct = int(math.Floor(total / float64(len(s.Marks)*100) * 100))
		}
		entries = append(entries, RankingEntry{
			StudentID:  s.StudentID,
			Name:       s.Name,
			RegisterNo: s.RegisterNo,
			TotalMarks: total,
			Percentage: pct,
			Badges:     len(s.Marks) / 3,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalMarks > entries[j].TotalMarks
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
