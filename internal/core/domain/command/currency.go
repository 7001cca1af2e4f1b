package command

import (
	"context"
	"errors"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"strconv"
	"strings"
	"time"
)

type Currency struct {
	converter  port.CurrencyConverter
	textSender port.TextSender
	command    string
}

func NewCurrency(converter port.CurrencyConverter, sender port.TextSender, command string) *Currency {
	return &Currency{converter: converter, textSender: sender, command: command}
}

func (c *Currency) GetCommand() string {
	return c.command
}

func (c *Currency) Usage() string {
	return c.command + " <amount> <from> <to> - convert currencies, e.g. " + c.command + " 100 USD EUR"
}

func (c *Currency) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(c.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := strings.Fields(ParseCommandArgs(message.Text))
	if len(args) != 3 {
		return reply(ctx, c.textSender, message, "Usage: "+c.Usage())
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return reply(ctx, c.textSender, message, "Usage: "+c.Usage())
	}

	from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])

	go c.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	result, err := c.converter.Convert(ctx, amount, from, to)
	if errors.Is(err, domain.ErrUnknownCurrency) {
		return reply(ctx, c.textSender, message, fmt.Sprintf("Unknown currency pair %s/%s.", from, to))
	}
	if err != nil {
		return c.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to convert currency: %w", err), message)
	}

	return reply(ctx, c.textSender, message, fmt.Sprintf("%s %s is equal to %.2f %s",
		strconv.FormatFloat(amount, 'f', -1, 64), from, result, to))
}
