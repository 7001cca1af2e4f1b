package command

import (
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"gadgetbot/internal/core/service"
	"strings"
	"time"
)

// DefaultPassage is the context handed to the extractive model when none is configured.
const DefaultPassage = "The model can answer general knowledge questions about various topics including history, " +
	"science, geography, and more."

const minAnswerLength = 5

type Ask struct {
	answerer   port.QuestionAnswerer
	textSender port.TextSender
	auth       service.Authorizer
	passage    string
	command    string
}

func NewAsk(answerer port.QuestionAnswerer, sender port.TextSender, auth service.Authorizer, passage,
	command string) *Ask {
	if passage == "" {
		passage = DefaultPassage
	}

	return &Ask{answerer: answerer, textSender: sender, auth: auth, passage: passage, command: command}
}

func (a *Ask) GetCommand() string {
	return a.command
}

func (a *Ask) Usage() string {
	return a.command + " <question> - answer a general knowledge question"
}

func (a *Ask) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(a.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !a.auth.IsAuthorized(ctx, message) {
		l.Debug().Msg("not authorized")
		return nil
	}

	question := ParseCommandArgs(message.Text)
	if question == "" {
		return reply(ctx, a.textSender, message, "Usage: "+a.Usage())
	}

	go a.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	answer, err := a.answerer.Answer(ctx, question, a.passage)
	if err != nil {
		return a.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to process question: %w", err), message)
	}

	l.Debug().Str("answer", answer.Text).Float64("score", answer.Score).Msg("model answered")

	if !isMeaningful(answer.Text) {
		return reply(ctx, a.textSender, message, fmt.Sprintf("I'm sorry, but I couldn't generate a meaningful "+
			"answer to your question: '%s'. Could you please rephrase or ask a different question?", question))
	}

	return reply(ctx, a.textSender, message, fmt.Sprintf("Question: %s\nAnswer: %s", question, answer.Text))
}

// isMeaningful rejects empty or very short answers and answers echoing the default passage.
func isMeaningful(answer string) bool {
	return len(answer) >= minAnswerLength && !strings.HasPrefix(strings.ToLower(answer), "the model")
}
