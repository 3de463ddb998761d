package entity

// BreachRecord is a read-only breach entry for an account, sourced from the
// Have I Been Pwned breached-account API.
type BreachRecord struct {
	Name        string   `json:"Name"`
	Title       string   `json:"Title"`
	Domain      string   `json:"Domain"`
	BreachDate  string   `json:"BreachDate"`
	DataClasses []string `json:"DataClasses"`
	Description string   `json:"Description"`
}
