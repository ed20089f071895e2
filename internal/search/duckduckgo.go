package search

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/skillbridge/internal/fetch"
)

// DefaultDuckDuckGoURL is the keyless HTML endpoint.
const DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// MaxSnippetChars bounds each snippet.
const MaxSnippetChars = 200

var (
	ddgLinkRe    = regexp.MustCompile(`<a rel="nofollow" class="result__a" href="([^"]+)"[^>]*>([^<]+)</a>`)
	ddgSnippetRe = regexp.MustCompile(`<a class="result__snippet"[^>]*>([^<]+)</a>`)
)

// DuckDuckGo scrapes the DuckDuckGo HTML results page.
type DuckDuckGo struct {
	BaseURL string
	Client  *fetch.Client
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	base := d.BaseURL
	if base == "" {
		base = DefaultDuckDuckGoURL
	}
	client := d.Client
	if client == nil {
		client = &fetch.Client{UserAgent: fetch.BrowserUserAgent}
	}
	resp, err := client.Get(ctx, base+"?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	results := ParseDuckDuckGoHTML(resp.Body, limit)
	for i := range results {
		results[i].Source = d.Name()
	}
	return results, nil
}

// ParseDuckDuckGoHTML extracts up to maxResults results from a DuckDuckGo HTML
// page. Links and snippets are matched independently and paired by position:
// the i-th link gets the i-th snippet, or an empty one when snippets run out.
// A page with no recognizable links yields an empty slice, not an error.
func ParseDuckDuckGoHTML(doc string, maxResults int) []Result {
	out := []Result{}
	if maxResults <= 0 {
		return out
	}
	links := ddgLinkRe.FindAllStringSubmatch(doc, -1)
	snippets := ddgSnippetRe.FindAllStringSubmatch(doc, -1)
	for i, m := range links {
		if len(out) >= maxResults {
			break
		}
		snippet := ""
		if i < len(snippets) {
			snippet = truncateRunes(strings.TrimSpace(snippets[i][1]), MaxSnippetChars)
		}
		out = append(out, Result{
			Title:   strings.TrimSpace(m[2]),
			URL:     m[1],
			Snippet: snippet,
		})
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
