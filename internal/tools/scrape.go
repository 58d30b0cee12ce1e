package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var (
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	excessiveLinesRe = regexp.MustCompile(`\n{4,}`)
)

// maxScrapeChars caps how much converted markdown a single scrape hands
// back to a role, keeping prompts within model context limits.
const maxScrapeChars = 24000

// ScrapeTool fetches a single web page and returns its main content as
// markdown.
type ScrapeTool struct {
	fetcher   *Fetcher
	converter *md.Converter
}

// NewScrapeTool creates a scrape tool backed by the given fetcher.
func NewScrapeTool(fetcher *Fetcher) *ScrapeTool {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &ScrapeTool{fetcher: fetcher, converter: converter}
}

// Name implements models.Tool.
func (t *ScrapeTool) Name() string { return "Website Scraper" }

// Description implements models.Tool.
func (t *ScrapeTool) Description() string {
	return "Fetch a single web page by URL and return its readable content as markdown"
}

// Run fetches and converts the page at the given URL. Failures are
// absorbed into a marker string.
func (t *ScrapeTool) Run(ctx context.Context, pageURL string) string {
	pageURL = strings.TrimSpace(pageURL)
	if !ValidateURL(pageURL) {
		return absorb(t.Name(), fmt.Errorf("invalid URL %q: must start with http:// or https://", pageURL))
	}

	body, err := t.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return absorb(t.Name(), err)
	}

	markdown, err := t.convert(body)
	if err != nil {
		return absorb(t.Name(), err)
	}
	if len(markdown) > maxScrapeChars {
		markdown = markdown[:maxScrapeChars] + "\n\n[content truncated]"
	}
	return markdown
}

// convert turns raw HTML into cleaned markdown, preferring the page's
// main content area when one is identifiable.
func (t *ScrapeTool) convert(body []byte) (string, error) {
	cleaned := extractMainContent(body)

	markdown, err := t.converter.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}

	markdown = excessiveLinesRe.ReplaceAllString(markdown, "\n\n\n")
	return strings.TrimSpace(markdown), nil
}

// extractMainContent returns the page's main/article element if present,
// otherwise the body with navigation chrome removed.
func extractMainContent(body []byte) string {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return basicHTMLCleanup(string(body))
	}

	for _, tag := range []string{"main", "article"} {
		if node := findElement(doc, tag); node != nil {
			return renderNode(node)
		}
	}

	removeElements(doc, []string{
		"nav", "header", "footer", "aside", "script", "style", "noscript",
		"iframe", "form", "input", "button",
	})
	if bodyNode := findElement(doc, "body"); bodyNode != nil {
		return renderNode(bodyNode)
	}
	return renderNode(doc)
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func removeElements(n *html.Node, tags []string) {
	unwanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		unwanted[t] = true
	}

	var prune func(*html.Node)
	prune = func(node *html.Node) {
		c := node.FirstChild
		for c != nil {
			next := c.NextSibling
			if c.Type == html.ElementNode && unwanted[c.Data] {
				node.RemoveChild(c)
			} else {
				prune(c)
			}
			c = next
		}
	}
	prune(n)
}

func renderNode(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

func basicHTMLCleanup(content string) string {
	content = scriptRe.ReplaceAllString(content, "")
	content = styleRe.ReplaceAllString(content, "")
	return content
}
