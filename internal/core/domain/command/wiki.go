package command

import (
	"context"
	"errors"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"time"
)

const DefaultSummarySentences = 3

type Wiki struct {
	encyclopedia port.Encyclopedia
	textSender   port.TextSender
	sentences    int
	command      string
}

func NewWiki(encyclopedia port.Encyclopedia, sender port.TextSender, sentences int, command string) *Wiki {
	if sentences < 1 {
		sentences = DefaultSummarySentences
	}

	return &Wiki{encyclopedia: encyclopedia, textSender: sender, sentences: sentences, command: command}
}

func (w *Wiki) GetCommand() string {
	return w.command
}

func (w *Wiki) Usage() string {
	return w.command + " <query> - summarize a Wikipedia article"
}

func (w *Wiki) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(w.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query := ParseCommandArgs(message.Text)
	if query == "" {
		return reply(ctx, w.textSender, message, "Please provide a query. Usage: "+w.command+" <query>")
	}

	go w.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	summary, err := w.encyclopedia.Summary(ctx, query, w.sentences)
	switch {
	case errors.Is(err, domain.ErrDisambiguation):
		return reply(ctx, w.textSender, message,
			fmt.Sprintf("Your query '%s' may refer to multiple topics. Please be more specific.", query))
	case errors.Is(err, domain.ErrPageNotFound):
		return reply(ctx, w.textSender, message,
			fmt.Sprintf("Sorry, I couldn't find a Wikipedia page for '%s'.", query))
	case err != nil:
		return w.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to fetch summary: %w", err), message)
	}

	return reply(ctx, w.textSender, message, fmt.Sprintf("Wikipedia summary for '%s':\n\n%s", query, summary))
}
