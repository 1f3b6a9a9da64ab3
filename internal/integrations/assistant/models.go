package assistant

// SuggestRequest asks the upstream assistant for component suggestions
// matching a free-form prompt within one category.
type SuggestRequest struct {
	Message            string   `json:"message" binding:"required"`
	Category           string   `json:"category" binding:"required"`
	ExistingComponents []string `json:"existing_components"`
}

// SuggestedComponent is one component proposal coming back from the
// assistant. IDs are upstream-generated UUIDs, not catalog ids.
type SuggestedComponent struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Category       string                 `json:"category"`
	Type           string                 `json:"type"`
	Description    string                 `json:"description"`
	Specifications map[string]interface{} `json:"specifications"`
}

type SuggestResponse struct {
	Components  []SuggestedComponent `json:"components"`
	Explanation string               `json:"explanation"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}
