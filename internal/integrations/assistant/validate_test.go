package assistant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validSuggestion(name string) SuggestedComponent {
	return SuggestedComponent{
		ID:       uuid.NewString(),
		Name:     name,
		Category: "drive",
		Type:     "servo",
		Specifications: map[string]interface{}{
			"voltage": "6V",
			"torque":  "1.2Nm",
		},
	}
}

func TestValidateSuggestionsAcceptsWellFormed(t *testing.T) {
	accepted, rejected := ValidateSuggestions([]SuggestedComponent{validSuggestion("MG996R Servo")}, nil)

	assert.Len(t, accepted, 1)
	assert.Empty(t, rejected)
}

func TestValidateSuggestionsRejectsInvalidUUID(t *testing.T) {
	suggestion := validSuggestion("MG996R Servo")
	suggestion.ID = "not-a-uuid"

	accepted, rejected := ValidateSuggestions([]SuggestedComponent{suggestion}, nil)

	assert.Empty(t, accepted)
	assert.Len(t, rejected, 1)
	assert.Contains(t, rejected[0], "invalid id")
}

func TestValidateSuggestionsRejectsUnknownCategory(t *testing.T) {
	suggestion := validSuggestion("MG996R Servo")
	suggestion.Category = "antigravity"

	accepted, rejected := ValidateSuggestions([]SuggestedComponent{suggestion}, nil)

	assert.Empty(t, accepted)
	assert.Contains(t, rejected[0], "unknown category")
}

func TestValidateSuggestionsRejectsMissingSpecKeys(t *testing.T) {
	suggestion := validSuggestion("MG996R Servo")
	delete(suggestion.Specifications, "torque")

	accepted, rejected := ValidateSuggestions([]SuggestedComponent{suggestion}, nil)

	assert.Empty(t, accepted)
	assert.Contains(t, rejected[0], "torque")
}

func TestValidateSuggestionsDedupesCaseInsensitive(t *testing.T) {
	accepted, rejected := ValidateSuggestions(
		[]SuggestedComponent{validSuggestion("MG996R Servo")},
		[]string{"mg996r servo"},
	)

	assert.Empty(t, accepted)
	assert.Contains(t, rejected[0], "duplicate")
}

func TestValidateSuggestionsDedupesWithinBatch(t *testing.T) {
	accepted, rejected := ValidateSuggestions([]SuggestedComponent{
		validSuggestion("MG996R Servo"),
		validSuggestion("MG996R SERVO"),
	}, nil)

	assert.Len(t, accepted, 1)
	assert.Len(t, rejected, 1)
}

func TestValidateSuggestionsNormalizesCategory(t *testing.T) {
	suggestion := validSuggestion("Gripper V2")
	suggestion.Category = "Object Manipulation"
	suggestion.Specifications = map[string]interface{}{
		"payload": "2kg",
		"reach":   "30cm",
	}

	accepted, rejected := ValidateSuggestions([]SuggestedComponent{suggestion}, nil)

	assert.Empty(t, rejected)
	assert.Len(t, accepted, 1)
	assert.Equal(t, "object_manipulation", accepted[0].Category)
}
