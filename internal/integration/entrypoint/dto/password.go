package dto

import (
	"github.com/fortify/backend/internal/application/usecase/password"
)

// CheckExposureRequest represents the request body for an exposure check.
type CheckExposureRequest struct {
	Password string `json:"password" binding:"required"`

	// DebounceKey identifies the input stream for debounced interactive
	// checks. Optional; an absent key checks immediately.
	DebounceKey string `json:"debounce_key"`
}

// CheckExposureResponse represents the result of an exposure check. Count
// is -1 when the lookup could not be completed.
type CheckExposureResponse struct {
	Count    int `json:"count"`
	Strength int `json:"strength"`
}

// SuggestionsRequest represents the request body for suggestion generation.
type SuggestionsRequest struct {
	Password string `json:"password" binding:"required"`
}

// SuggestionResponse represents one generated candidate.
type SuggestionResponse struct {
	Password string `json:"password"`
	Count    int    `json:"count"`
	Strength int    `json:"strength"`
	Safe     bool   `json:"safe"`
}

// SuggestionsResponse represents the full set of candidates, in order.
type SuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// ToSuggestionsResponse converts use case output to the response DTO.
func ToSuggestionsResponse(output *password.GenerateSuggestionsOutput) SuggestionsResponse {
	suggestions := make([]SuggestionResponse, 0, len(output.Suggestions))
	for _, s := range output.Suggestions {
		suggestions = append(suggestions, SuggestionResponse{
			Password: s.Password,
			Count:    s.Count,
			Strength: s.Strength,
			Safe:     s.Safe,
		})
	}
	return SuggestionsResponse{Suggestions: suggestions}
}
