package command

import (
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"strings"
	"time"
)

type Help struct {
	registry   port.CommandRegistry
	textSender port.TextSender
	command    string
}

func NewHelp(registry port.CommandRegistry, sender port.TextSender, command string) *Help {
	return &Help{registry: registry, textSender: sender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Usage() string {
	return h.command + " - list available commands"
}

func (h *Help) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(h.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sb := &strings.Builder{}
	sb.WriteString("Here's what I can do:\n\n")

	for _, name := range h.registry.ListCommands() {
		cmd, err := h.registry.Get(name)
		if err != nil {
			return fmt.Errorf("failed to construct response: %w", err)
		}

		fmt.Fprintf(sb, " %s\n", cmd.Usage())
	}

	return reply(ctx, h.textSender, message, sb.String())
}
