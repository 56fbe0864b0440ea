// Package insights generates the portal's "AI" feedback and grade
// predictions. Everything here is synthetic: canned text picked by score
// thresholds plus a seeded random drift for simulated confidence and marks.
// None of it feeds back into the deterministic grading core.
package insights

import (
	"fmt"
	"math/rand"

	"github.com/smartresult/backend/internal/grading"
)

// Emotion tones attached to feedback entries
const (
	ToneEncouraging = "encouraging"
	ToneNeutral     = "neutral"
	ToneChallenging = "challenging"
)

// Trend directions attached to predictions
const (
	TrendUp     = "up"
	TrendStable = "stable"
	TrendDown   = "down"
)

// SubjectScore is one subject's result for a student
type SubjectScore struct {
	Subject  string
	Marks    float64
	MaxMarks float64
}

// Feedback is a per-subject canned feedback entry
type Feedback struct {
	Subject         string   `json:"subject"`
	Text            string   `json:"feedback_text"`
	Tone            string   `json:"emotion_tone"`
	ImprovementTips []string `json:"improvement_tips"`
}

// Prediction is a simulated next-exam projection for one subject
type Prediction struct {
	Subject        string  `json:"subject"`
	PredictedGrade string  `json:"predicted_grade"`
	PredictedMarks int     `json:"predicted_marks"`
	Confidence     float64 `json:"confidence"`
	Trend          string  `json:"trend"`
}

// Generator produces synthetic predictions. The random source is injected so
// callers (and tests) control determinism.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// BuildFeedback maps each subject score to a canned feedback entry chosen by
// percentage band. Deterministic: no randomness is involved.
func BuildFeedback(scores []SubjectScore) []Feedback {
	feedback := make([]Feedback, 0, len(scores))
	for _, s := range scores {
		max := grading.ResolveMaxMarks(s.MaxMarks)
		percentage := s.Marks / max * 100

		var f Feedback
		f.Subject = s.Subject
		switch {
		case percentage >= 80:
			f.Tone = ToneEncouraging
			f.Text = fmt.Sprintf("Excellent performance in %s! You scored %.0f/%.0f marks. Your strong understanding and consistent effort are paying off. Keep up this outstanding work!", s.Subject, s.Marks, max)
			f.ImprovementTips = []string{
				"Help peers understand challenging topics",
				"Explore advanced concepts beyond curriculum",
				"Challenge yourself with complex problems",
			}
		case percentage >= 70:
			f.Tone = ToneNeutral
			f.Text = fmt.Sprintf("Good work in %s! Your score of %.0f/%.0f shows solid understanding. With focused practice on weak areas, you can achieve higher grades.", s.Subject, s.Marks, max)
			f.ImprovementTips = []string{
				"Identify and practice weak topics",
				"Review previous exams for patterns",
				"Join study groups for peer learning",
			}
		case percentage >= 60:
			f.Tone = ToneNeutral
			f.Text = fmt.Sprintf("Average performance in %s with %.0f/%.0f marks. You need more focus and consistent practice to improve your scores.", s.Subject, s.Marks, max)
			f.ImprovementTips = []string{
				"Create a structured study schedule",
				"Break topics into smaller chunks",
				"Take regular practice tests",
			}
		default:
			f.Tone = ToneChallenging
			f.Text = fmt.Sprintf("Your score of %.0f/%.0f in %s indicates you need significant improvement. This is a critical moment to buckle down and seek help. With dedicated effort, you can quickly improve.", s.Marks, max, s.Subject)
			f.ImprovementTips = []string{
				"Seek one-on-one tutoring support",
				"Focus on fundamentals first",
				"Practice daily without missing sessions",
				"Talk to your teacher about difficulties",
			}
		}
		feedback = append(feedback, f)
	}
	return feedback
}

// Predictions projects each subject score forward with a trend picked by
// percentage band, a random marks drift of at most 5 in the trend's
// direction, and a simulated confidence in [0.85, 1.0).
func (g *Generator) Predictions(scores []SubjectScore) []Prediction {
	predictions := make([]Prediction, 0, len(scores))
	for _, s := range scores {
		percentage := s.Marks / grading.ResolveMaxMarks(s.MaxMarks) * 100

		var trend string
		switch {
		case percentage >= 75:
			trend = TrendUp
		case percentage >= 60:
			trend = TrendStable
		default:
			trend = TrendDown
		}

		predicted := s.Marks
		switch trend {
		case TrendUp:
			predicted = s.Marks + g.rng.Float64()*5
			if predicted > 100 {
				predicted = 100
			}
		case TrendDown:
			predicted = s.Marks - g.rng.Float64()*5
			if predicted < 0 {
				predicted = 0
			}
		}

		rounded := int(predicted + 0.5)
		predictions = append(predictions, Prediction{
			Subject:        s.Subject,
			PredictedGrade: grading.Classify(float64(rounded)),
			PredictedMarks: rounded,
			Confidence:     0.85 + g.rng.Float64()*0.15,
			Trend:          trend,
		})
	}
	return predictions
}
