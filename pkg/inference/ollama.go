package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultOllamaBaseURL is the OpenAI-compatible endpoint of a local Ollama
// instance on its standard port.
const DefaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaInferencer runs chat completions against a local Ollama runtime
// through its OpenAI-compatible API. No credential is required.
type OllamaInferencer struct {
	client      *openai.Client
	model       string
	temperature float64
}

// NewOllamaInferencer creates an inferencer for a local Ollama instance.
func NewOllamaInferencer(model string, temperature float64) *OllamaInferencer {
	if model == "" {
		model = "llama3"
	}
	client := openai.NewClient(
		option.WithBaseURL(DefaultOllamaBaseURL),
		option.WithAPIKey("ollama"), // the endpoint ignores it but the SDK wants one
	)
	return &OllamaInferencer{
		client:      &client,
		model:       model,
		temperature: temperature,
	}
}

// ChangeBaseURL points the client at a non-default Ollama host.
func (o *OllamaInferencer) ChangeBaseURL(baseURL string) {
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey("ollama"),
	)
	o.client = &client
}

func (o *OllamaInferencer) SetModel(model string) {
	o.model = model
}

// Infer sends the system/user pair to the local chat completion endpoint.
func (o *OllamaInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if o.client == nil {
		return "", ErrNotInitialized
	}
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	} else {
		clone := *params
		params = &clone
	}
	params.Model = cmp.Or(params.Model, o.model)
	params.Messages = chatMessages(system, user)
	params.MaxCompletionTokens = openai.Int(cmp.Or(params.MaxCompletionTokens.Value, 4096))
	if !params.Temperature.Valid() {
		params.Temperature = openai.Float(o.temperature)
	}
	// Local runtimes reject the hosted structured-output formats.
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{}

	resp, err := o.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		return "", fmt.Errorf("ollama inference error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	if resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion content")
	}

	return resp.Choices[0].Message.Content, nil
}
