package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/revrost/go-openrouter"
	"github.com/rs/zerolog/log"
)

const DefaultModel = "openai/gpt-4.1-mini"

type client interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

// OpenRouter completes single prompts through the OpenRouter chat completion API.
type OpenRouter struct {
	client       client
	model        string
	systemPrompt string
}

func NewOpenRouter(apiKey, model, systemPrompt string) *OpenRouter {
	if model == "" {
		model = DefaultModel
	}

	return &OpenRouter{
		model:        model,
		systemPrompt: systemPrompt,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("gadgetbot"),
		),
	}
}

func (o *OpenRouter) GenerateFromPrompt(ctx context.Context, prompt string, maxTokens int) (string, error) {
	messages := make([]openrouter.ChatCompletionMessage, 0, 2)

	if o.systemPrompt != "" {
		messages = append(messages, openrouter.ChatCompletionMessage{
			Role:    openrouter.ChatMessageRoleSystem,
			Content: openrouter.Content{Text: o.systemPrompt},
		})
	}

	messages = append(messages, openrouter.ChatCompletionMessage{
		Role:    openrouter.ChatMessageRoleUser,
		Content: openrouter.Content{Text: prompt},
	})

	ccr := openrouter.ChatCompletionRequest{
		Messages:  messages,
		Model:     o.model,
		MaxTokens: maxTokens,
	}

	resp, err := o.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return "", fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openrouter returned no choices")
	}

	log.Debug().
		Str("model", resp.Model).
		Int("completionTokens", resp.Usage.CompletionTokens).
		Int("totalTokens", resp.Usage.TotalTokens).
		Msg("completion received")

	return resp.Choices[0].Message.Content.Text, nil
}
