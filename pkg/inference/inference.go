// Package inference normalizes heterogeneous LLM backends into a single
// text-in/text-out capability. Every backend failure after construction is
// reported as an error value; only selecting an unknown provider is fatal.
package inference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
)

// Inferencer runs one chat completion: a system message (may be empty) plus a
// user message, returning the raw response text. params carries optional
// generation overrides; backends that do not speak the OpenAI wire format map
// the fields they understand and ignore the rest.
type Inferencer interface {
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
}

// Supported provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

var (
	// ErrUnsupportedProvider is returned by New for unknown provider names.
	// This is a configuration mistake and the only construction-time failure.
	ErrUnsupportedProvider = errors.New("inference: unsupported provider")

	// ErrNotInitialized is returned by Infer when the backend client could
	// not be set up. The inferencer stays usable as a value; every call just
	// reports this same failure.
	ErrNotInitialized = errors.New("inference: client not initialized")
)

// Config selects and parameterizes a backend.
type Config struct {
	// Provider is one of the Provider* constants.
	Provider string
	// Model is the backend model identifier; empty picks a per-backend default.
	Model string
	// APIKey overrides the <PROVIDER>_API_KEY environment variable. A missing
	// credential is not fatal here; it surfaces later as a call failure.
	APIKey string
	// Temperature in [0,1], lower is more deterministic. Passed through to the
	// backend verbatim, no clamping.
	Temperature float64
}

// New constructs the inferencer for cfg.Provider.
func New(cfg Config) (Inferencer, error) {
	key := cfg.APIKey
	if key == "" {
		key = EnvAPIKey(cfg.Provider)
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIInferencer(key, cfg.Model, cfg.Temperature), nil
	case ProviderAnthropic:
		return NewAnthropicInferencer(key, cfg.Model, cfg.Temperature), nil
	case ProviderGemini:
		return NewGeminiInferencer(key, cfg.Model, cfg.Temperature), nil
	case ProviderOllama:
		return NewOllamaInferencer(cfg.Model, cfg.Temperature), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
}

// EnvAPIKey reads the conventional credential variable for a provider,
// e.g. OPENAI_API_KEY for "openai".
func EnvAPIKey(provider string) string {
	return os.Getenv(strings.ToUpper(provider) + "_API_KEY")
}
