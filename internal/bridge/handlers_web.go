package bridge

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/skillbridge/internal/extract"
	"github.com/hyperifyio/skillbridge/internal/search"
)

type webSearchResult struct {
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
	Query   string          `json:"query"`
}

// FetchedPage is the payload of "web fetch".
type FetchedPage struct {
	URL     string `json:"url"`
	Content string `json:"content"`
	Length  int    `json:"length"`
}

// weatherGet ignores the action token; the location is the first argument.
func (s *Service) weatherGet(ctx context.Context, args []string) (any, error) {
	return s.Weather.Lookup(ctx, argOr(args, 0, s.defaultLocation()))
}

func (s *Service) webSearch(ctx context.Context, args []string) (any, error) {
	query := argOr(args, 0, "")
	max, err := intArg(args, 1, defaultSearchResults, "max_results")
	if err != nil {
		return nil, err
	}
	results, err := s.Search.Search(ctx, query, max)
	if err != nil {
		return nil, err
	}
	if len(results) > max {
		results = results[:max]
	}
	if results == nil {
		results = []search.Result{}
	}
	sources := make(map[string]int)
	for _, r := range results {
		sources[r.Source]++
	}
	log.Debug().Str("provider", s.Search.Name()).Interface("sources", sources).Int("count", len(results)).Msg("web search results")
	return webSearchResult{Results: results, Count: len(results), Query: query}, nil
}

func (s *Service) webFetch(ctx context.Context, args []string) (any, error) {
	url := args[0]
	max, err := intArg(args, 1, defaultFetchChars, "max_chars")
	if err != nil {
		return nil, err
	}
	if max == 0 {
		return nil, errors.New("invalid max_chars 0: must be positive")
	}
	resp, err := s.Pages.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	ex := s.Extractor
	if ex == nil {
		ex = extract.PatternExtractor{}
	}
	text := ex.Extract(resp.Body, max)
	return FetchedPage{URL: url, Content: text.Text, Length: text.Len()}, nil
}
