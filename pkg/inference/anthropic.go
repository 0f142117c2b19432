package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go/v3"
)

// AnthropicInferencer runs chat completions through Anthropic's official SDK.
// It accepts the shared OpenAI-shaped params and maps the fields the Messages
// API understands; response-format unions are ignored.
type AnthropicInferencer struct {
	client      *anthropic.Client
	apiKey      string
	model       string
	temperature float64
}

// NewAnthropicInferencer creates an inferencer backed by the Anthropic API.
func NewAnthropicInferencer(apiKey, model string, temperature float64) *AnthropicInferencer {
	if model == "" {
		model = "claude-sonnet-4-0"
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicInferencer{
		client:      &client,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
	}
}

func (o *AnthropicInferencer) SetModel(model string) {
	o.model = model
}

// Infer sends the system/user pair to the Messages endpoint.
func (o *AnthropicInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if o.client == nil {
		return "", ErrNotInitialized
	}

	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(o.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
		Temperature: anthropic.Float(o.temperature),
	}
	if params != nil {
		req.Model = anthropic.Model(cmp.Or(params.Model, o.model))
		req.MaxTokens = cmp.Or(params.MaxCompletionTokens.Value, req.MaxTokens)
		if params.Temperature.Valid() {
			req.Temperature = anthropic.Float(params.Temperature.Value)
		}
	}
	if system != "" {
		req.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := o.client.Messages.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("anthropic inference error: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("empty completion content")
	}

	return sb.String(), nil
}
