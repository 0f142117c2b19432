package inference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnsupportedProvider(t *testing.T) {
	for _, provider := range []string{"", "azure", "OpenAI"} {
		inf, err := New(Config{Provider: provider})
		assert.ErrorIs(t, err, ErrUnsupportedProvider, "provider %q", provider)
		assert.Nil(t, inf)
	}
}

func TestNewKnownProviders(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama} {
		inf, err := New(Config{Provider: provider, APIKey: "test-key"})
		require.NoError(t, err, "provider %q", provider)
		assert.NotNil(t, inf, "provider %q", provider)
	}
}

func TestZeroValueInferencersReportNotInitialized(t *testing.T) {
	ctx := context.Background()
	for name, inf := range map[string]Inferencer{
		"openai":    &OpenAIInferencer{},
		"anthropic": &AnthropicInferencer{},
		"gemini":    &GeminiInferencer{},
		"ollama":    &OllamaInferencer{},
	} {
		_, err := inf.Infer(ctx, nil, "system", "user")
		assert.ErrorIs(t, err, ErrNotInitialized, name)
	}
}

func TestEnvAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")
	assert.Equal(t, "from-env", EnvAPIKey(ProviderOpenAI))
	assert.Empty(t, EnvAPIKey("nonexistent"))
}

func TestNewPrefersExplicitKeyOverEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")
	inf, err := New(Config{Provider: ProviderOpenAI, APIKey: "explicit"})
	require.NoError(t, err)

	o, ok := inf.(*OpenAIInferencer)
	require.True(t, ok)
	assert.Equal(t, "explicit", o.apiKey)
}

func TestChatMessagesOmitsEmptySystem(t *testing.T) {
	assert.Len(t, chatMessages("", "hello"), 1)
	assert.Len(t, chatMessages("be terse", "hello"), 2)
}

func TestDefaultModels(t *testing.T) {
	assert.Equal(t, "gpt-4", NewOpenAIInferencer("k", "", 0).model)
	assert.Equal(t, "claude-sonnet-4-0", NewAnthropicInferencer("k", "", 0).model)
	assert.Equal(t, "gemini-2.5-flash", NewGeminiInferencer("k", "", 0).model)
	assert.Equal(t, "llama3", NewOllamaInferencer("", 0).model)

	o := NewOpenAIInferencer("k", "gpt-4o-mini", 0)
	assert.Equal(t, "gpt-4o-mini", o.model)
	o.SetModel("gpt-4o")
	assert.Equal(t, "gpt-4o", o.model)
}
