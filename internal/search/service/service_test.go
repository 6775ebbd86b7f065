package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"followup_backend/internal/search/repository"
	"followup_backend/internal/search/transport"
	"followup_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeSearcher struct {
	gotQuery string
	gotLimit int
	results  []repository.SearchResult
	err      error
}

func (f *fakeSearcher) SearchLeads(_ context.Context, query string, limit int) ([]repository.SearchResult, error) {
	f.gotQuery, f.gotLimit = query, limit
	return f.results, f.err
}

func TestSearchBlankQuery(t *testing.T) {
	repo := &fakeSearcher{}
	resp, err := New(repo).Search(context.Background(), transport.SearchRequest{Query: "   "})
	if err != nil || resp.Total != 0 || len(resp.Items) != 0 {
		t.Fatalf("unexpected response %+v (%v)", resp, err)
	}
	if repo.gotQuery != "" {
		t.Fatal("expected repository not to be queried")
	}
}

func TestSearchMapsResults(t *testing.T) {
	id := uuid.New()
	repo := &fakeSearcher{results: []repository.SearchResult{
		{
			ID:           id,
			Name:         "Asha Rao",
			Email:        "asha@example.com",
			Phone:        "+919876543210",
			RemarkHit:    "wants a  quote\nnext week",
			MatchedField: "remarks",
			Score:        0.5,
			CreatedAt:    time.Now(),
			Total:        3,
		},
		{ID: uuid.New(), Name: "Ravi", Phone: "+911234567890", MatchedField: "phone", Score: 3, Total: 3},
	}}

	resp, err := New(repo).Search(context.Background(), transport.SearchRequest{Query: " quote "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotQuery != "quote" || repo.gotLimit != defaultLimit {
		t.Fatalf("unexpected repository call %q/%d", repo.gotQuery, repo.gotLimit)
	}
	if resp.Total != 3 || len(resp.Items) != 2 {
		t.Fatalf("unexpected totals %+v", resp)
	}
	first := resp.Items[0]
	if first.Preview != "wants a quote next week" || first.Subtitle != "asha@example.com" || first.Link != "/leads/"+id.String() {
		t.Fatalf("unexpected item %+v", first)
	}
	if resp.Items[1].Subtitle != "+911234567890" {
		t.Fatalf("expected phone subtitle, got %q", resp.Items[1].Subtitle)
	}
}

func TestSearchWrapsRepositoryError(t *testing.T) {
	_, err := New(&fakeSearcher{err: errors.New("boom")}).Search(context.Background(), transport.SearchRequest{Query: "asha"})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", previewMaxRune+5)
	got := truncate(long, previewMaxRune)
	if n := len([]rune(got)); n != previewMaxRune {
		t.Fatalf("expected %d runes, got %d", previewMaxRune, n)
	}
	if truncate("short", previewMaxRune) != "short" {
		t.Fatal("short strings must be kept")
	}
}
