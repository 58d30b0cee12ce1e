package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/harrison/advisor/internal/models"
)

const searchEndpoint = "https://html.duckduckgo.com/html/"

// maxSearchResults bounds how many hits a single search returns to the role.
const maxSearchResults = 8

// WebSearchTool searches the internet about a topic via the DuckDuckGo
// HTML endpoint and returns titled results with URLs and snippets.
type WebSearchTool struct {
	fetcher *Fetcher
}

// NewWebSearchTool creates a search tool backed by the given fetcher.
func NewWebSearchTool(fetcher *Fetcher) *WebSearchTool {
	return &WebSearchTool{fetcher: fetcher}
}

// Name implements models.Tool.
func (t *WebSearchTool) Name() string { return "DuckDuckGo Search" }

// Description implements models.Tool.
func (t *WebSearchTool) Description() string {
	return "Search the internet about a given topic and return relevant results"
}

// Run executes the search. Failures are absorbed into a marker string.
func (t *WebSearchTool) Run(ctx context.Context, query string) string {
	results, err := t.search(ctx, query)
	if err != nil {
		return absorb(t.Name(), err)
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.", query)
	}
	return strings.Join(results, "\n\n")
}

type searchResult struct {
	title   string
	url     string
	snippet string
}

func (t *WebSearchTool) search(ctx context.Context, query string) ([]string, error) {
	u := searchEndpoint + "?q=" + url.QueryEscape(query)
	body, err := t.fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	hits, err := parseSearchResults(body)
	if err != nil {
		return nil, err
	}

	var out []string
	for i, hit := range hits {
		if i >= maxSearchResults {
			break
		}
		out = append(out, fmt.Sprintf("%d. %s\n   %s\n   %s", i+1, hit.title, hit.url, hit.snippet))
	}
	return out, nil
}

// parseSearchResults extracts result anchors and snippets from the
// DuckDuckGo HTML response.
func parseSearchResults(body []byte) ([]searchResult, error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var results []searchResult
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "result__a") {
			results = append(results, searchResult{
				title: nodeText(n),
				url:   attr(n, "href"),
			})
		}
		if n.Type == html.ElementNode && hasClass(n, "result__snippet") && len(results) > 0 {
			if results[len(results)-1].snippet == "" {
				results[len(results)-1].snippet = nodeText(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// absorb converts a tool failure into the inline marker string the
// executor passes back to the role. This is the only exit path for tool
// errors; they never propagate.
func absorb(tool string, err error) string {
	terr := &models.ToolError{Tool: tool, Err: err}
	return terr.Error()
}
