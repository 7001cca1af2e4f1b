package port

import (
	"context"
	"gadgetbot/internal/core/domain"
)

type TextGenerator interface {
	// GenerateFromPrompt completes a single prompt, producing at most maxTokens tokens.
	GenerateFromPrompt(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type QuestionAnswerer interface {
	// Answer extracts the span of passage that best answers question.
	Answer(ctx context.Context, question, passage string) (domain.Answer, error)
}
