package risk

import (
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []Rating
		expected Level
	}{
		{"no factors", []Rating{}, LevelLow},
		{"nil factors", nil, LevelLow},
		{"single low factor", []Rating{{Severity: 1, Probability: 1}}, LevelLow},
		{"score 5 is low", []Rating{{Severity: 5, Probability: 1}}, LevelLow},
		{"score 6 boundary is medium", []Rating{{Severity: 3, Probability: 2}}, LevelMedium},
		{"score 12 is medium", []Rating{{Severity: 3, Probability: 4}}, LevelMedium},
		{"score 15 boundary is high", []Rating{{Severity: 5, Probability: 3}}, LevelHigh},
		{"score 25 is high", []Rating{{Severity: 5, Probability: 5}}, LevelHigh},
		{
			// maxima taken across different factors: max severity 5 pairs
			// with max probability 5 even though no single factor has both
			"cross factor maxima",
			[]Rating{{Severity: 5, Probability: 1}, {Severity: 1, Probability: 5}},
			LevelHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.ratings); got != tt.expected {
				t.Errorf("Compute() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []Rating
		expected int
	}{
		{"empty", nil, 0},
		{"single factor", []Rating{{Severity: 3, Probability: 4}}, 12},
		{"cross factor product", []Rating{{Severity: 5, Probability: 1}, {Severity: 1, Probability: 5}}, 25},
		{"max of each axis", []Rating{{Severity: 2, Probability: 4}, {Severity: 3, Probability: 2}}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.ratings); got != tt.expected {
				t.Errorf("Score() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected Level
	}{
		{0, LevelLow},
		{5, LevelLow},
		{6, LevelMedium},
		{14, LevelMedium},
		{15, LevelHigh},
		{25, LevelHigh},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.expected {
			t.Errorf("Classify(%d) = %v, want %v", tt.score, got, tt.expected)
		}
	}
}

func TestRatingValidate(t *testing.T) {
	tests := []struct {
		name    string
		rating  Rating
		wantErr bool
	}{
		{"valid minimum", Rating{Severity: 1, Probability: 1}, false},
		{"valid maximum", Rating{Severity: 5, Probability: 5}, false},
		{"severity zero", Rating{Severity: 0, Probability: 3}, true},
		{"severity too high", Rating{Severity: 6, Probability: 3}, true},
		{"probability zero", Rating{Severity: 3, Probability: 0}, true},
		{"probability too high", Rating{Severity: 3, Probability: 9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rating.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
