package analyzer

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInferencer struct {
	mu    sync.Mutex
	calls []string
	fn    func(system, user string) (string, error)
}

func (f *fakeInferencer) Infer(_ context.Context, _ *openai.ChatCompletionNewParams, system, user string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, user)
	f.mu.Unlock()
	return f.fn(system, user)
}

func quiet() Option {
	return WithLogger(log.New(io.Discard))
}

func TestExtractCharactersMergesAcrossChunks(t *testing.T) {
	fake := &fakeInferencer{fn: func(_, user string) (string, error) {
		switch {
		case strings.Contains(user, "psychohistory"):
			return `[{"name": "Hari Seldon", "confidence": 0.9, "role": "supporting"}]`, nil
		case strings.Contains(user, "Trantor"):
			return `[{"name": "Hari Seldon", "confidence": 0.98, "role": "protagonist"},
			        {"name": "Gaal Dornick", "confidence": 0.96}]`, nil
		}
		return "", errors.New("unexpected prompt")
	}}
	a := New(fake, quiet())

	text := "Hari Seldon proposed psychohistory. Gaal Dornick arrived on Trantor"
	chars := a.ExtractCharacters(context.Background(), text, 40)

	require.Len(t, fake.calls, 2)
	require.Len(t, chars, 2)
	assert.Equal(t, "Hari Seldon", chars[0].Name)
	assert.Equal(t, 0.98, chars[0].Confidence)
	assert.Equal(t, "protagonist", chars[0].Role)
	assert.Equal(t, "Gaal Dornick", chars[1].Name)
}

func TestExtractCharactersSkipsFailedChunk(t *testing.T) {
	fake := &fakeInferencer{fn: func(_, user string) (string, error) {
		if strings.Contains(user, "psychohistory") {
			return "", errors.New("backend down")
		}
		return `[{"name": "Gaal Dornick", "confidence": 0.96}]`, nil
	}}
	a := New(fake, quiet())

	text := "Hari Seldon proposed psychohistory. Gaal Dornick arrived on Trantor"
	chars := a.ExtractCharacters(context.Background(), text, 40)

	require.Len(t, chars, 1)
	assert.Equal(t, "Gaal Dornick", chars[0].Name)
}

func TestExtractCharactersMalformedChunkContributesNothing(t *testing.T) {
	fake := &fakeInferencer{fn: func(_, _ string) (string, error) {
		return "Sorry, I can only answer in prose.", nil
	}}
	a := New(fake, quiet())

	chars := a.ExtractCharacters(context.Background(), "Hari Seldon stood before the Emperor", 0)

	assert.Empty(t, chars)
}

func TestExtractCharactersOrderStableUnderConcurrency(t *testing.T) {
	// The slow first chunk must still win the confidence tie, because
	// records are merged in chunk order, not completion order.
	fake := &fakeInferencer{fn: func(_, user string) (string, error) {
		if strings.Contains(user, "psychohistory") {
			time.Sleep(30 * time.Millisecond)
			return `[{"name": "Hari Seldon", "confidence": 0.9, "role": "first"}]`, nil
		}
		return `[{"name": "Hari Seldon", "confidence": 0.9, "role": "second"}]`, nil
	}}
	a := New(fake, quiet(), WithConcurrency(4))

	text := "Hari Seldon proposed psychohistory. Gaal Dornick arrived on Trantor"
	chars := a.ExtractCharacters(context.Background(), text, 40)

	require.Len(t, chars, 1)
	assert.Equal(t, "first", chars[0].Role)
}

func TestExtractCharactersFuzzyOption(t *testing.T) {
	fake := &fakeInferencer{fn: func(_, user string) (string, error) {
		if strings.Contains(user, "psychohistory") {
			return `[{"name": "Hari Seldon", "confidence": 0.9}]`, nil
		}
		return `[{"name": "Hari Sheldon", "confidence": 0.95}]`, nil
	}}
	a := New(fake, quiet(), WithFuzzyMerge(0.85))

	text := "Hari Seldon proposed psychohistory. Gaal Dornick arrived on Trantor"
	chars := a.ExtractCharacters(context.Background(), text, 40)

	require.Len(t, chars, 1)
	assert.Equal(t, "Hari Sheldon", chars[0].Name)
	assert.Contains(t, chars[0].Aliases, "Hari Seldon")
}

func TestAnalyzeRelationships(t *testing.T) {
	fake := &fakeInferencer{fn: func(_, user string) (string, error) {
		assert.Contains(t, user, "Hari Seldon, Gaal Dornick")
		return `{"relationships": [{"character1": "Hari Seldon", "character2": "Gaal Dornick", "type": "mentor", "strength": 8}]}`, nil
	}}
	a := New(fake, quiet())

	set := a.AnalyzeRelationships(context.Background(), "some text", []string{"Hari Seldon", "Gaal Dornick"})

	require.Len(t, set.Relationships, 1)
	assert.Equal(t, "mentor", set.Relationships[0].Type)
}

func TestAnalyzeRelationshipsFailureReturnsEmptySet(t *testing.T) {
	for name, fn := range map[string]func(system, user string) (string, error){
		"call failure":   func(_, _ string) (string, error) { return "", errors.New("backend down") },
		"decode failure": func(_, _ string) (string, error) { return "no json here", nil },
	} {
		fake := &fakeInferencer{fn: fn}
		a := New(fake, quiet())

		set := a.AnalyzeRelationships(context.Background(), "text", []string{"Hari Seldon"})

		require.NotNil(t, set.Relationships, name)
		assert.Empty(t, set.Relationships, name)
	}
}

func TestExtractCharacterTraits(t *testing.T) {
	fake := &fakeInferencer{fn: func(_, user string) (string, error) {
		assert.Contains(t, user, `"Hari Seldon"`)
		return `{"name": "Hari Seldon", "personality": ["calm"]}`, nil
	}}
	a := New(fake, quiet())

	profile := a.ExtractCharacterTraits(context.Background(), "text", "Hari Seldon")

	assert.Equal(t, "Hari Seldon", profile.Name)
	assert.Equal(t, []string{"calm"}, profile.Personality)
	assert.Empty(t, profile.Error)
}

func TestExtractCharacterTraitsFailureCarriesMarker(t *testing.T) {
	fake := &fakeInferencer{fn: func(_, _ string) (string, error) {
		return "", errors.New("backend down")
	}}
	a := New(fake, quiet())

	profile := a.ExtractCharacterTraits(context.Background(), "text", "Hari Seldon")

	assert.Equal(t, "Hari Seldon", profile.Name)
	assert.Equal(t, "LLM call failed", profile.Error)
}

func TestCacheCoalescesIdenticalPrompts(t *testing.T) {
	fake := &fakeInferencer{fn: func(_, _ string) (string, error) {
		return `[{"name": "Hari Seldon", "confidence": 0.9}]`, nil
	}}
	a := New(fake, quiet(), WithCache(time.Minute))

	text := "Hari Seldon proposed psychohistory"
	a.ExtractCharacters(context.Background(), text, 0)
	a.ExtractCharacters(context.Background(), text, 0)

	assert.Len(t, fake.calls, 1)
}
