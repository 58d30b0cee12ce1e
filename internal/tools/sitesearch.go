package tools

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harrison/advisor/internal/llm"
)

// Chunking bounds for site content. Sized so a handful of ranked chunks
// fit comfortably in a role's prompt.
const (
	chunkTargetChars = 3000
	maxRankedChunks  = 4
)

// Embedder is the slice of the OpenAI client the site search needs.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// SiteSearchTool answers queries against the content of one website. The
// page is scraped once per tool lifetime, chunked, and ranked against the
// query by embedding similarity; when the embedding call fails the tool
// degrades to lexical term-overlap ranking rather than failing the task.
type SiteSearchTool struct {
	siteURL  string
	scraper  *ScrapeTool
	embedder Embedder
	config   *llm.SearchConfig

	content string // cached scraped markdown, empty until first Run
}

// NewSiteSearchTool creates a site-restricted search over siteURL.
// embedder may be nil, in which case ranking is always lexical.
func NewSiteSearchTool(siteURL string, fetcher *Fetcher, embedder Embedder, cfg *llm.SearchConfig) *SiteSearchTool {
	return &SiteSearchTool{
		siteURL:  siteURL,
		scraper:  NewScrapeTool(fetcher),
		embedder: embedder,
		config:   cfg,
	}
}

// Name implements models.Tool.
func (t *SiteSearchTool) Name() string { return "Website Search" }

// Description implements models.Tool.
func (t *SiteSearchTool) Description() string {
	return fmt.Sprintf("Search the content of %s for information about a query", t.siteURL)
}

// Run searches the site content for the query. Failures are absorbed into
// a marker string.
func (t *SiteSearchTool) Run(ctx context.Context, query string) string {
	if t.content == "" {
		scraped := t.scraper.Run(ctx, t.siteURL)
		if strings.Contains(scraped, "failed:") && strings.HasPrefix(scraped, t.scraper.Name()) {
			// Scrape already absorbed its error; re-tag it as ours.
			return absorb(t.Name(), fmt.Errorf("could not load %s", t.siteURL))
		}
		t.content = scraped
	}

	chunks := splitChunks(t.content, chunkTargetChars)
	if len(chunks) == 0 {
		return fmt.Sprintf("No content available on %s.", t.siteURL)
	}

	ranked := t.rank(ctx, query, chunks)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Relevant content from %s for %q:\n\n", t.siteURL, query)
	for i, chunk := range ranked {
		if i > 0 {
			sb.WriteString("\n\n---\n\n")
		}
		sb.WriteString(chunk)
	}
	return sb.String()
}

// rank orders chunks by relevance to the query, preferring embeddings and
// falling back to lexical overlap.
func (t *SiteSearchTool) rank(ctx context.Context, query string, chunks []string) []string {
	if t.embedder != nil {
		if ranked, err := t.rankByEmbedding(ctx, query, chunks); err == nil {
			return ranked
		}
	}
	return rankLexical(query, chunks)
}

func (t *SiteSearchTool) rankByEmbedding(ctx context.Context, query string, chunks []string) ([]string, error) {
	model := openai.SmallEmbedding3
	if t.config != nil && t.config.EmbeddingDeployment != "" {
		model = openai.EmbeddingModel(t.config.EmbeddingDeployment)
	}

	input := append([]string{query}, chunks...)
	resp, err := t.embedder.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: input,
		Model: model,
	})
	if err != nil {
		return nil, fmt.Errorf("embed site chunks: %w", err)
	}
	if len(resp.Data) != len(input) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Data), len(input))
	}

	queryVec := resp.Data[0].Embedding
	type scored struct {
		chunk string
		score float64
	}
	scoredChunks := make([]scored, len(chunks))
	for i, chunk := range chunks {
		scoredChunks[i] = scored{chunk: chunk, score: cosine(queryVec, resp.Data[i+1].Embedding)}
	}
	sort.SliceStable(scoredChunks, func(i, j int) bool {
		return scoredChunks[i].score > scoredChunks[j].score
	})

	out := make([]string, 0, maxRankedChunks)
	for i := 0; i < len(scoredChunks) && i < maxRankedChunks; i++ {
		out = append(out, scoredChunks[i].chunk)
	}
	return out, nil
}

// rankLexical orders chunks by query-term frequency.
func rankLexical(query string, chunks []string) []string {
	terms := strings.Fields(strings.ToLower(query))

	type scored struct {
		chunk string
		score int
	}
	scoredChunks := make([]scored, len(chunks))
	for i, chunk := range chunks {
		lower := strings.ToLower(chunk)
		score := 0
		for _, term := range terms {
			score += strings.Count(lower, term)
		}
		scoredChunks[i] = scored{chunk: chunk, score: score}
	}
	sort.SliceStable(scoredChunks, func(i, j int) bool {
		return scoredChunks[i].score > scoredChunks[j].score
	})

	out := make([]string, 0, maxRankedChunks)
	for i := 0; i < len(scoredChunks) && i < maxRankedChunks; i++ {
		out = append(out, scoredChunks[i].chunk)
	}
	return out
}

// splitChunks splits markdown into chunks of roughly target characters,
// breaking on paragraph boundaries.
func splitChunks(content string, target int) []string {
	paragraphs := strings.Split(content, "\n\n")

	var chunks []string
	var current strings.Builder
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(p) > target {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
