package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

const (
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultOpenAIEndpoint = "https://api.openai.com/v1"
	defaultOllamaModel    = "ministral-3:latest"
	defaultOllamaEndpoint = "http://localhost:11434"

	// Manual excerpts are clipped well below every provider's context window.
	maxManualChars = 24_000
)

const defaultLLMHTTPTimeout = 3 * time.Minute

// Config describes how to build an LLM client.
type Config struct {
	Provider   string
	Model      string
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
	// Manual is optional reference text; matching sentences are added to
	// each prompt.
	Manual string
}

// Client answers free-text questions about the calculator.
type Client interface {
	Ask(ctx context.Context, question string) (string, error)
	Name() string
}

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderGemini, ProviderOpenAI, ProviderOllama}
}

// DefaultModel reports the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return defaultOpenAIModel
	case ProviderOllama:
		return defaultOllamaModel
	default:
		return defaultGeminiModel
	}
}

// New builds the client for cfg.Provider. An empty provider selects Gemini.
// A missing API key is not an error here; the client reports it on Ask so the
// overlay can show it like any other failure.
func New(cfg Config) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel(provider)
	}
	httpClient := pickHTTPClient(cfg.HTTPClient)

	switch provider {
	case ProviderGemini:
		return &geminiClient{
			apiKey: cfg.APIKey,
			model:  model,
			base:   endpointOr(cfg.Endpoint, defaultGeminiEndpoint),
			manual: cfg.Manual,
			client: httpClient,
		}, nil
	case ProviderOpenAI:
		return &openAIClient{
			apiKey: cfg.APIKey,
			model:  model,
			base:   endpointOr(cfg.Endpoint, defaultOpenAIEndpoint),
			manual: cfg.Manual,
			client: httpClient,
		}, nil
	case ProviderOllama:
		host := cfg.Endpoint
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		return &ollamaClient{
			host:   endpointOr(host, defaultOllamaEndpoint),
			model:  model,
			manual: cfg.Manual,
			client: httpClient,
		}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want one of %s)", cfg.Provider, strings.Join(Providers(), ", "))
	}
}

func endpointOr(value, fallback string) string {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if value == "" {
		return fallback
	}
	return value
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Local models often need more than a minute; the caller's context bounds the wait.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}
