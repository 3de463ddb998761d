package dto

import (
	"github.com/fortify/backend/internal/domain/entity"
)

// BreachResponse represents one breach the account appeared in.
type BreachResponse struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Domain      string   `json:"domain"`
	BreachDate  string   `json:"breach_date"`
	DataClasses []string `json:"data_classes"`
	Description string   `json:"description"`
}

// BreachListResponse represents all breaches found for an account. An
// empty list means the account is confirmed clean.
type BreachListResponse struct {
	Breaches []BreachResponse `json:"breaches"`
	Cached   bool             `json:"cached"`
}

// ToBreachListResponse converts domain breach records to the response DTO.
func ToBreachListResponse(records []entity.BreachRecord, cached bool) BreachListResponse {
	breaches := make([]BreachResponse, 0, len(records))
	for _, r := range records {
		breaches = append(breaches, BreachResponse{
			Name:        r.Name,
			Title:       r.Title,
			Domain:      r.Domain,
			BreachDate:  r.BreachDate,
			DataClasses: r.DataClasses,
			Description: r.Description,
		})
	}
	return BreachListResponse{Breaches: breaches, Cached: cached}
}
