package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// GeminiInferencer runs chat completions through the Google GenAI SDK.
type GeminiInferencer struct {
	client      *genai.Client
	apiKey      string
	model       string
	temperature float64
}

// NewGeminiInferencer creates an inferencer backed by the Gemini API.
// If the SDK client cannot be set up, construction still succeeds and every
// Infer call reports ErrNotInitialized instead.
func NewGeminiInferencer(apiKey, model string, temperature float64) *GeminiInferencer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	g := &GeminiInferencer{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return g
	}
	g.client = client
	return g
}

// ChangeConfig rebuilds the client from a new SDK config. On failure the
// previous client is kept.
func (o *GeminiInferencer) ChangeConfig(config *genai.ClientConfig) {
	client, err := genai.NewClient(context.Background(), config)
	if err != nil {
		return
	}
	o.client = client
}

func (o *GeminiInferencer) SetModel(model string) {
	o.model = model
}

// Infer sends the system/user pair to the GenAI generate-content endpoint.
func (o *GeminiInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if o.client == nil {
		return "", ErrNotInitialized
	}
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}

	temperature := float32(o.temperature)
	if params.Temperature.Valid() {
		temperature = float32(params.Temperature.Value)
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  int32(cmp.Or(params.MaxCompletionTokens.Value, 4096)),
		Temperature:      &temperature,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleModel)
	}

	result, err := o.client.Models.GenerateContent(
		ctx,
		cmp.Or(params.Model, o.model),
		genai.Text(user),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("gemini inference error: %w", err)
	}
	if result.Text() == "" {
		return "", errors.New("empty completion content")
	}

	return result.Text(), nil
}
