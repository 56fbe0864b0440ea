package insights

import (
	"strings"
	"testing"
)

func TestBuildFeedback(t *testing.T) {
	tests := []struct {
		name     string
		marks    float64
		maxMarks float64
		tone     string
	}{
		{"High score encouraging", 85, 100, ToneEncouraging},
		{"Good score neutral", 72, 100, ToneNeutral},
		{"Average score neutral", 62, 100, ToneNeutral},
		{"Low score challenging", 40, 100, ToneChallenging},
		{"Non-100 denominator", 45, 50, ToneEncouraging},
		{"Zero max falls back to 100", 75, 0, ToneNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := BuildFeedback([]SubjectScore{{Subject: "Maths", Marks: tt.marks, MaxMarks: tt.maxMarks}})
			if len(fb) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(fb))
			}
			if fb[0].Tone != tt.tone {
				t.Errorf("expected tone %s, got %s", tt.tone, fb[0].Tone)
			}
			if !strings.Contains(fb[0].Text, "Maths") {
				t.Errorf("feedback text missing subject: %s", fb[0].Text)
			}
			if len(fb[0].ImprovementTips) == 0 {
				t.Error("expected improvement tips")
			}
		})
	}

	t.Run("Empty input", func(t *testing.T) {
		if fb := BuildFeedback(nil); len(fb) != 0 {
			t.Errorf("expected no feedback, got %d entries", len(fb))
		}
	})
}

func TestPredictions(t *testing.T) {
	t.Run("Trends by band", func(t *testing.T) {
		g := NewGenerator(1)
		preds := g.Predictions([]SubjectScore{
			{Subject: "Maths", Marks: 90, MaxMarks: 100},
			{Subject: "Physics", Marks: 65, MaxMarks: 100},
			{Subject: "History", Marks: 40, MaxMarks: 100},
		})

		if preds[0].Trend != TrendUp || preds[1].Trend != TrendStable || preds[2].Trend != TrendDown {
			t.Errorf("unexpected trends: %s, %s, %s", preds[0].Trend, preds[1].Trend, preds[2].Trend)
		}
	})

	t.Run("Drift bounded and confidence in range", func(t *testing.T) {
		g := NewGenerator(42)
		for i := 0; i < 100; i++ {
			preds := g.Predictions([]SubjectScore{
				{Subject: "Maths", Marks: 98, MaxMarks: 100},
				{Subject: "History", Marks: 3, MaxMarks: 100},
			})
			if preds[0].PredictedMarks > 100 {
				t.Fatalf("prediction exceeds 100: %d", preds[0].PredictedMarks)
			}
			if preds[1].PredictedMarks < 0 {
				t.Fatalf("prediction below 0: %d", preds[1].PredictedMarks)
			}
			for _, p := range preds {
				if p.Confidence < 0.85 || p.Confidence > 1.0 {
					t.Fatalf("confidence out of range: %f", p.Confidence)
				}
			}
		}
	})

	t.Run("Stable trend keeps marks", func(t *testing.T) {
		g := NewGenerator(7)
		preds := g.Predictions([]SubjectScore{{Subject: "Physics", Marks: 65, MaxMarks: 100}})
		if preds[0].PredictedMarks != 65 {
			t.Errorf("stable trend should keep marks, got %d", preds[0].PredictedMarks)
		}
		if preds[0].PredictedGrade != "C" {
			t.Errorf("expected grade C for 65, got %s", preds[0].PredictedGrade)
		}
	})

	t.Run("Seeded generator is reproducible", func(t *testing.T) {
		in := []SubjectScore{{Subject: "Maths", Marks: 90, MaxMarks: 100}}
		a := NewGenerator(99).Predictions(in)
		b := NewGenerator(99).Predictions(in)
		if a[0] != b[0] {
			t.Errorf("same seed produced different predictions: %+v vs %+v", a[0], b[0])
		}
	})
}
