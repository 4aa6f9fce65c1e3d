package models

// Category is the funding source class of a scholarship.
type Category string

const (
	CategoryGovernment Category = "Government"
	CategoryPrivate    Category = "Private"
)

// Scope is the geographic reach of a scholarship.
type Scope string

const (
	ScopeState    Scope = "State"
	ScopeNational Scope = "National"
	ScopeGlobal   Scope = "Global"
)

// Scholarship is an immutable record produced by a matching backend. Amount
// and Deadline are free text exactly as the source wrote them.
type Scholarship struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Provider            string   `json:"provider"`
	Amount              string   `json:"amount"`
	Deadline            string   `json:"deadline"`
	EligibilityCriteria string   `json:"eligibilityCriteria"`
	Description         string   `json:"description"`
	Category            Category `json:"category"`
	Scope               Scope    `json:"scope"`
	Link                string   `json:"link"`
	TargetCommunity     string   `json:"targetCommunity,omitempty"`
}

// MatchResult is the backend's verdict for one scholarship.
type MatchResult struct {
	ScholarshipID       string `json:"scholarshipId"`
	MatchScore          int    `json:"matchScore"`
	Reasoning           string `json:"reasoning"`
	LocalCurrencyAmount string `json:"localCurrencyAmount,omitempty"`
}

// ScholarshipMatch pairs a scholarship with its match result.
type ScholarshipMatch struct {
	Scholarship Scholarship `json:"scholarship"`
	Match       MatchResult `json:"match"`
}
