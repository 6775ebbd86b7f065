package transport

import "time"

type SearchRequest struct {
	Query string `form:"q" validate:"required,min=2,max=100"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=50"`
}

type SearchResultItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`        // Lead name
	Subtitle     string    `json:"subtitle"`     // Email or phone
	Preview      string    `json:"preview"`      // Snippet of what matched (remarks, description)
	Service      string    `json:"service"`      // Service the lead asked about
	Link         string    `json:"link"`         // Frontend route
	Score        float64   `json:"score"`        // Relevance score
	MatchedField string    `json:"matchedField"` // Which field matched (highlighting)
	CreatedAt    time.Time `json:"createdAt"`
}

type SearchResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}
