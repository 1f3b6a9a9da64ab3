package risk

import "fmt"

type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

const (
	MinRating = 1
	MaxRating = 5

	highThreshold   = 15
	mediumThreshold = 6
)

// Rating is one risk factor's severity/probability pair, both 1-5.
type Rating struct {
	Severity    int
	Probability int
}

func (r Rating) Validate() error {
	if r.Severity < MinRating || r.Severity > MaxRating {
		return fmt.Errorf("severity must be between %d and %d, got %d", MinRating, MaxRating, r.Severity)
	}
	if r.Probability < MinRating || r.Probability > MaxRating {
		return fmt.Errorf("probability must be between %d and %d, got %d", MinRating, MaxRating, r.Probability)
	}
	return nil
}

// Score multiplies the maximum severity by the maximum probability across
// all ratings. The two maxima may come from different ratings; that pairing
// is deliberate and matches the classification the rest of the system
// expects. Returns 0 for an empty list.
func Score(ratings []Rating) int {
	if len(ratings) == 0 {
		return 0
	}

	maxSeverity := 0
	maxProbability := 0
	for _, r := range ratings {
		if r.Severity > maxSeverity {
			maxSeverity = r.Severity
		}
		if r.Probability > maxProbability {
			maxProbability = r.Probability
		}
	}

	return maxSeverity * maxProbability
}

func Classify(score int) Level {
	switch {
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Compute derives the qualitative level for a set of ratings. An empty list
// is low risk.
func Compute(ratings []Rating) Level {
	return Classify(Score(ratings))
}

func (l Level) String() string {
	return string(l)
}
