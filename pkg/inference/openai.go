package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

// OpenAIInferencer runs chat completions through OpenAI's official Go SDK.
type OpenAIInferencer struct {
	client      *openai.Client
	apiKey      string
	model       string
	temperature float64
}

// NewOpenAIInferencer creates an inferencer backed by the hosted OpenAI API.
func NewOpenAIInferencer(apiKey, model string, temperature float64) *OpenAIInferencer {
	if model == "" {
		model = "gpt-4"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIInferencer{
		client:      &client,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
	}
}

// ChangeBaseURL points the client at an OpenAI-compatible endpoint.
func (o *OpenAIInferencer) ChangeBaseURL(baseURL string) {
	client := openai.NewClient(
		option.WithAPIKey(o.apiKey),
		option.WithBaseURL(baseURL),
	)
	o.client = &client
}

func (o *OpenAIInferencer) SetModel(model string) {
	o.model = model
}

// Infer sends the system/user pair to the chat completion endpoint.
func (o *OpenAIInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
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

	resp, err := o.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		return "", fmt.Errorf("openai inference error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	if resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion content")
	}

	return resp.Choices[0].Message.Content, nil
}

// chatMessages builds the two-message conversation all chat backends share.
// An empty system prompt sends the user message alone.
func chatMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Role: "system",
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: param.Opt[string]{Value: system},
				},
			},
		})
	}
	return append(msgs, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Role: "user",
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: param.Opt[string]{Value: user},
			},
		},
	})
}
