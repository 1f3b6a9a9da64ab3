package assistant

import (
	"strings"

	"github.com/google/uuid"

	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
)

// requiredSpecKeys lists the specification fields a suggestion must carry
// to be usable in the catalog for a given category.
var requiredSpecKeys = map[metadata.Category][]string{
	metadata.CategoryDrive:              {"voltage", "torque"},
	metadata.CategoryController:         {"processor", "memory"},
	metadata.CategoryPower:              {"voltage", "capacity"},
	metadata.CategoryCommunication:      {"protocol", "range"},
	metadata.CategorySoftware:           {"platform", "version"},
	metadata.CategoryObjectManipulation: {"payload", "reach"},
	metadata.CategorySensors:            {"measurement_type", "accuracy"},
	metadata.CategoryChassis:            {"material", "weight"},
}

// ValidateSuggestions filters the assistant output down to proposals that
// are safe to show: valid UUID id, known category, all required
// specification keys present, and a name not already in the catalog
// (case-insensitive). Rejected proposals are returned with reasons so the
// client can explain what was dropped.
func ValidateSuggestions(suggestions []SuggestedComponent, existingNames []string) ([]SuggestedComponent, []string) {
	existing := make(map[string]bool, len(existingNames))
	for _, name := range existingNames {
		existing[strings.ToLower(strings.TrimSpace(name))] = true
	}

	accepted := make([]SuggestedComponent, 0, len(suggestions))
	var rejected []string
	seen := make(map[string]bool)

	for _, suggestion := range suggestions {
		if _, err := uuid.Parse(suggestion.ID); err != nil {
			rejected = append(rejected, suggestion.Name+": invalid id")
			continue
		}

		category, err := metadata.NewCategory(suggestion.Category)
		if err != nil {
			rejected = append(rejected, suggestion.Name+": unknown category "+suggestion.Category)
			continue
		}

		if missing := missingSpecKeys(category, suggestion.Specifications); len(missing) > 0 {
			rejected = append(rejected, suggestion.Name+": missing specifications "+strings.Join(missing, ", "))
			continue
		}

		key := strings.ToLower(strings.TrimSpace(suggestion.Name))
		if key == "" {
			rejected = append(rejected, "(unnamed): empty name")
			continue
		}
		if existing[key] || seen[key] {
			rejected = append(rejected, suggestion.Name+": duplicate of existing component")
			continue
		}
		seen[key] = true

		suggestion.Category = string(category)
		accepted = append(accepted, suggestion)
	}

	return accepted, rejected
}

func missingSpecKeys(category metadata.Category, specs map[string]interface{}) []string {
	var missing []string
	for _, key := range requiredSpecKeys[category] {
		value, ok := specs[key]
		if !ok || value == nil || value == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
