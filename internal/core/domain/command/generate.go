package command

import (
	"context"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"gadgetbot/internal/core/service"
	"strings"
	"time"
)

const DefaultMaxTokens = 100

const generationFailed = "An error occurred while generating the response."

// Generate answers free-form prompts with a hosted text model. Every call passes through the gate that spaces and
// counts requests to the model's API.
type Generate struct {
	generator  port.TextGenerator
	gate       service.Limiter
	textSender port.TextSender
	auth       service.Authorizer
	maxTokens  int
	command    string
}

type GenerateParams struct {
	Generator  port.TextGenerator
	Gate       service.Limiter
	TextSender port.TextSender
	Auth       service.Authorizer
	MaxTokens  int
	Command    string
}

func NewGenerate(p GenerateParams) *Generate {
	if p.MaxTokens < 1 {
		p.MaxTokens = DefaultMaxTokens
	}

	return &Generate{
		generator:  p.Generator,
		gate:       p.Gate,
		textSender: p.TextSender,
		auth:       p.Auth,
		maxTokens:  p.MaxTokens,
		command:    p.Command,
	}
}

func (g *Generate) GetCommand() string {
	return g.command
}

func (g *Generate) Usage() string {
	return g.command + " <prompt> - generate text with a language model"
}

func (g *Generate) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(g.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !g.auth.IsAuthorized(ctx, message) {
		l.Debug().Msg("not authorized")
		return nil
	}

	prompt := ParseCommandArgs(message.Text)
	if prompt == "" {
		return reply(ctx, g.textSender, message, "Usage: "+g.Usage())
	}

	go g.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	response, err := g.gate.Do(ctx, func(ctx context.Context) (string, error) {
		return g.generator.GenerateFromPrompt(ctx, prompt, g.maxTokens)
	})
	if err != nil {
		l.Err(err).Msg("generation failed")
		return reply(ctx, g.textSender, message, generationFailed)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		l.Warn().Msg("model returned an empty response")
		return reply(ctx, g.textSender, message, generationFailed)
	}

	return reply(ctx, g.textSender, message, response)
}
