package dto

import (
	"time"

	"github.com/mtlprog/sqlgallery/internal/catalog"
	"github.com/mtlprog/sqlgallery/internal/domain"
	"github.com/mtlprog/sqlgallery/internal/gallery"
)

// CategoryResponse represents one tab.
type CategoryResponse struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Aggregate bool   `json:"aggregate"`
}

// CategoriesResponse represents the response for GET /categories.
type CategoriesResponse struct {
	Default    string             `json:"default"`
	Categories []CategoryResponse `json:"categories"`
}

// CardResponse represents a rendered card.
type CardResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	DescriptionHTML string  `json:"description_html"`
	ImageSrc        string  `json:"image_src"`
	LinkURL         *string `json:"link_url"`
	RawContentURL   *string `json:"raw_content_url"`
}

// CardsResponse represents the response for GET /categories/{name}/cards.
type CardsResponse struct {
	Category string         `json:"category"`
	Cards    []CardResponse `json:"cards"`
}

// SearchResult represents one search hit.
type SearchResult struct {
	Category string       `json:"category"`
	Distance int          `json:"distance"`
	Card     CardResponse `json:"card"`
}

// SearchResponse represents the response for GET /search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// CopyStat represents aggregated copy events for one card and outcome.
type CopyStat struct {
	CardID  string    `json:"card_id"`
	Outcome string    `json:"outcome"`
	Count   int       `json:"count"`
	LastAt  time.Time `json:"last_at"`
}

// CopyEventResponse represents a single recorded copy event.
type CopyEventResponse struct {
	ID        string    `json:"id"`
	CardID    string    `json:"card_id"`
	Source    string    `json:"source"`
	Outcome   string    `json:"outcome"`
	Bytes     int       `json:"bytes"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsResponse represents the response for GET /stats.
type StatsResponse struct {
	TotalCopies int                 `json:"total_copies"`
	Failures    int                 `json:"failures"`
	Stats       []CopyStat          `json:"stats"`
	Recent      []CopyEventResponse `json:"recent"`
}

// ToCardResponse converts a rendered card view to CardResponse.
func ToCardResponse(cv gallery.CardView) CardResponse {
	resp := CardResponse{
		ID:              cv.ID,
		Title:           cv.Title,
		Content:         cv.Content,
		DescriptionHTML: string(cv.Description),
		ImageSrc:        cv.ImageSrc,
	}
	if cv.Link != nil {
		u := cv.Link.URL
		resp.LinkURL = &u
	}
	if cv.Copy != nil {
		u := cv.Copy.URL
		resp.RawContentURL = &u
	}
	return resp
}

// ToCardsResponse converts rendered card views to CardsResponse.
func ToCardsResponse(category string, cards []gallery.CardView) CardsResponse {
	out := CardsResponse{Category: category, Cards: make([]CardResponse, len(cards))}
	for i, cv := range cards {
		out.Cards[i] = ToCardResponse(cv)
	}
	return out
}

// ToSearchResult converts a catalog match and its rendered card.
func ToSearchResult(m catalog.Match, cv gallery.CardView) SearchResult {
	return SearchResult{
		Category: m.Category,
		Distance: m.Distance,
		Card:     ToCardResponse(cv),
	}
}

// ToStatsResponse converts aggregated stats and recent events.
func ToStatsResponse(stats []domain.CopyStat, recent []*domain.CopyEvent) StatsResponse {
	resp := StatsResponse{
		Stats:  make([]CopyStat, len(stats)),
		Recent: make([]CopyEventResponse, len(recent)),
	}
	for i, s := range stats {
		resp.Stats[i] = CopyStat{
			CardID:  s.CardID,
			Outcome: string(s.Outcome),
			Count:   s.Count,
			LastAt:  s.LastAt,
		}
		resp.TotalCopies += s.Count
		if s.Outcome != domain.CopyOutcomeOK {
			resp.Failures += s.Count
		}
	}
	for i, e := range recent {
		resp.Recent[i] = CopyEventResponse{
			ID:        e.ID,
			CardID:    e.CardID,
			Source:    e.Source,
			Outcome:   string(e.Outcome),
			Bytes:     e.Bytes,
			Error:     e.Error,
			CreatedAt: e.CreatedAt,
		}
	}
	return resp
}
