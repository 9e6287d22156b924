package models

// MappingStatus reports whether a recipe ingredient resolution has been
// confirmed by the user. A fuzzy suggestion alone never resolves review
// status, even though cost computation uses it as a fallback.
type MappingStatus string

const (
	MappingStatusResolved    MappingStatus = "resolved"
	MappingStatusNeedsReview MappingStatus = "needs_review"
)

// MappingRow resolves one recipe ingredient name to an inventory article.
// Exactly one row exists per distinct recipe ingredient name; rows are
// created lazily the first time a name appears.
type MappingRow struct {
	RecipeName string        `json:"recipeName"`
	Suggestion string        `json:"suggestion,omitempty"` // derived best fuzzy match
	Correction string        `json:"correction,omitempty"` // user override
	Status     MappingStatus `json:"status"`
}

// Resolved returns the article name cost computation should use:
// correction first, suggestion as optimistic fallback.
func (m *MappingRow) Resolved() string {
	if m.Correction != "" {
		return m.Correction
	}
	return m.Suggestion
}
