// Package llm resolves Azure OpenAI credentials from the environment and
// constructs the shared chat-completion client used by every pipeline.
//
// Client construction is expensive and happens at most once per process:
// the Provider follows the http.Client pattern (create once, share), and
// the package-level Default() holder guards first construction with
// sync.Once so concurrent first access stays safe.
package llm

import (
	"os"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harrison/advisor/internal/models"
)

// Required environment variables. All three must be present before any
// pipeline may run.
const (
	EnvAPIKey       = "AZURE_API_KEY"
	EnvAPIBase      = "AZURE_API_BASE"
	EnvOpenAIAPIKey = "AZURE_OPENAI_API_KEY"
)

// Model deployment settings for the hosted Azure endpoints.
const (
	APIVersion          = "2025-01-01-preview"
	ChatDeployment      = "gpt-4o"
	EmbeddingDeployment = "text-embedding-ada-002"
)

// Sampling temperatures used by the pipeline definitions.
const (
	// DefaultTemperature suits generative planning work.
	DefaultTemperature float32 = 0.7
	// RetrievalTemperature suits retrieval-oriented research work.
	RetrievalTemperature float32 = 0.2
)

// Credentials holds the resolved Azure credential set.
type Credentials struct {
	APIKey  string // AZURE_API_KEY
	APIBase string // AZURE_API_BASE endpoint URL
}

// SearchConfig carries what tools need to run their own embedding
// calls: the credential set and the deployment to embed with.
type SearchConfig struct {
	APIKey              string
	APIBase             string
	APIVersion          string
	EmbeddingDeployment string
}

// EmbeddingClient constructs a client for embedding calls from the
// carried credential set.
func (c *SearchConfig) EmbeddingClient() *openai.Client {
	cfg := openai.DefaultAzureConfig(c.APIKey, c.APIBase)
	cfg.APIVersion = c.APIVersion
	return openai.NewClientWithConfig(cfg)
}

// Provider constructs and caches the shared client. Safe for concurrent
// use; the client is built exactly once per Provider.
type Provider struct {
	once   sync.Once
	client *openai.Client
	err    error
}

// ResolveCredentials checks the environment for the required variables and
// returns the credential set. Missing variables produce a
// ConfigurationError carrying every missing name. On success the generic
// OPENAI_API_KEY alias is backfilled once from the native credential, for
// libraries that expect the generic name.
func ResolveCredentials() (*Credentials, error) {
	required := []string{EnvAPIKey, EnvAPIBase, EnvOpenAIAPIKey}
	var missing []string
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &models.ConfigurationError{Missing: missing}
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		os.Setenv("OPENAI_API_KEY", os.Getenv(EnvOpenAIAPIKey))
	}

	return &Credentials{
		APIKey:  os.Getenv(EnvAPIKey),
		APIBase: os.Getenv(EnvAPIBase),
	}, nil
}

// Client returns the shared chat-completion client, constructing it on
// first call. Repeated calls return the same handle (or the same
// construction error).
func (p *Provider) Client() (*openai.Client, error) {
	p.once.Do(func() {
		creds, err := ResolveCredentials()
		if err != nil {
			p.err = err
			return
		}
		cfg := openai.DefaultAzureConfig(creds.APIKey, creds.APIBase)
		cfg.APIVersion = APIVersion
		p.client = openai.NewClientWithConfig(cfg)
	})
	return p.client, p.err
}

// SearchClientConfig returns the credential set in the shape required by
// tools that configure embedding + generation directly. Same error
// contract as Client.
func (p *Provider) SearchClientConfig() (*SearchConfig, error) {
	creds, err := ResolveCredentials()
	if err != nil {
		return nil, err
	}
	return &SearchConfig{
		APIKey:              creds.APIKey,
		APIBase:             creds.APIBase,
		APIVersion:          APIVersion,
		EmbeddingDeployment: EmbeddingDeployment,
	}, nil
}

// Process-wide provider and initialization guard.
var (
	defaultProvider *Provider
	defaultOnce     sync.Once
)

// Default returns the process-wide Provider instance.
func Default() *Provider {
	defaultOnce.Do(func() {
		defaultProvider = &Provider{}
	})
	return defaultProvider
}

// ResetDefault resets the process-wide provider for testing purposes.
// This is NOT thread-safe and should only be used in tests.
func ResetDefault() {
	defaultOnce = sync.Once{}
	defaultProvider = nil
}
