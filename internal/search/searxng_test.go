package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hyperifyio/skillbridge/internal/fetch"
)

func TestSearxNG_Search_ParsesResults(t *testing.T) {
	var gotQuery, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "Doc", "url": "https://example.com", "content": "snippet"},
				{"title": "Bad", "url": "", "content": "no url"},
			},
		})
	}))
	defer srv.Close()

	s := &SearxNG{BaseURL: srv.URL, Client: &fetch.Client{Timeout: 2 * time.Second}}
	got, err := s.Search(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if gotQuery != "query" || gotFormat != "json" {
		t.Fatalf("unexpected request params q=%q format=%q", gotQuery, gotFormat)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 valid result, got %d", len(got))
	}
	if got[0].URL != "https://example.com" || got[0].Source != "searxng" {
		t.Fatalf("unexpected result: %+v", got[0])
	}
}

func TestSearxNG_Search_RequiresBaseURL(t *testing.T) {
	s := &SearxNG{}
	if _, err := s.Search(context.Background(), "q", 5); err == nil {
		t.Fatalf("expected error without base url")
	}
}
