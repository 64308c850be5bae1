package domain

// SuggestionType tags where a suggestion came from.
type SuggestionType string

const (
	SuggestionProduct  SuggestionType = "product"
	SuggestionBrand    SuggestionType = "brand"
	SuggestionCategory SuggestionType = "category"
	SuggestionKeyword  SuggestionType = "keyword"
)

// Suggestion is one entry of the search-box dropdown.
type Suggestion struct {
	Type      SuggestionType `json:"type"`
	Text      string         `json:"text"`
	Category  string         `json:"category"`
	Thumbnail string         `json:"thumbnail,omitempty"`
	Platform  *Platform      `json:"platform,omitempty"`
	ProductID int            `json:"product_id,omitempty"`
}
