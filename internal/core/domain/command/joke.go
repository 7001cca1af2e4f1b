package command

import (
	"context"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"math/rand/v2"
	"time"
)

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"Why did the scarecrow win an award? He was outstanding in his field!",
	"Why don't eggs tell jokes? They'd crack each other up!",
	"Why don't skeletons fight each other? They don't have the guts!",
	"What do you call a fake noodle? An impasta!",
}

type Joke struct {
	textSender port.TextSender
	command    string
	intn       func(n int) int
}

func NewJoke(sender port.TextSender, command string) *Joke {
	return &Joke{textSender: sender, command: command, intn: rand.IntN}
}

func (j *Joke) GetCommand() string {
	return j.command
}

func (j *Joke) Usage() string {
	return j.command + " - tell a random joke"
}

func (j *Joke) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(j.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return reply(ctx, j.textSender, message, jokes[j.intn(len(jokes))])
}
