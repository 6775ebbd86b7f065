package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"followup_backend/internal/search/repository"
	"followup_backend/internal/search/transport"
	"followup_backend/platform/apperr"
)

const (
	defaultLimit   = 10
	previewMaxRune = 140
	// leadLinkPrefix is the frontend route of a lead's detail page.
	leadLinkPrefix = "/leads/"
)

// Searcher is the repository operation the service needs.
type Searcher interface {
	SearchLeads(ctx context.Context, query string, limit int) ([]repository.SearchResult, error)
}

type Service struct {
	repo Searcher
}

func New(repo Searcher) *Service {
	return &Service{repo: repo}
}

func (s *Service) Search(ctx context.Context, req transport.SearchRequest) (*transport.SearchResponse, error) {
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return &transport.SearchResponse{Items: []transport.SearchResultItem{}, Total: 0}, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	results, err := s.repo.SearchLeads(ctx, q, limit)
	if err != nil {
		appErr := apperr.Internal("search failed").WithOp("search.Search")
		appErr.Err = err
		return nil, appErr
	}

	total := 0
	if len(results) > 0 {
		total = int(results[0].Total)
	}

	items := make([]transport.SearchResultItem, len(results))
	for i, r := range results {
		items[i] = transport.SearchResultItem{
			ID:           r.ID.String(),
			Title:        r.Name,
			Subtitle:     subtitle(r),
			Preview:      preview(r),
			Service:      r.Service,
			Link:         leadLinkPrefix + r.ID.String(),
			Score:        float64(r.Score),
			MatchedField: r.MatchedField,
			CreatedAt:    r.CreatedAt,
		}
	}

	return &transport.SearchResponse{Items: items, Total: total}, nil
}

func subtitle(r repository.SearchResult) string {
	if r.MatchedField == "phone" || r.Email == "" {
		return r.Phone
	}
	return r.Email
}

func preview(r repository.SearchResult) string {
	text := r.Description
	if r.MatchedField == "remarks" || (r.RemarkHit != "" && text == "") {
		text = r.RemarkHit
	}
	return truncate(strings.Join(strings.Fields(text), " "), previewMaxRune)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
