package command

import (
	"context"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"math/rand/v2"
	"time"
)

var coinSides = [2]string{"Heads", "Tails"}

type Flip struct {
	textSender port.TextSender
	command    string
	intn       func(n int) int
}

func NewFlip(sender port.TextSender, command string) *Flip {
	return &Flip{textSender: sender, command: command, intn: rand.IntN}
}

func (f *Flip) GetCommand() string {
	return f.command
}

func (f *Flip) Usage() string {
	return f.command + " - flip a coin"
}

func (f *Flip) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(f.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return reply(ctx, f.textSender, message, "The coin landed on: "+coinSides[f.intn(len(coinSides))])
}
