package command

import (
	"context"
	"errors"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// MaxDice caps the number of dice per roll so the reply fits in a single message.
const MaxDice = 100

// MaxSides caps the sides per die so the sum of a roll cannot overflow.
const MaxSides = 1_000_000

const rollFormatHint = "Format has to be in NdN!"

var ErrInvalidDice = errors.New("invalid dice notation")

type Roll struct {
	textSender port.TextSender
	command    string
	intn       func(n int) int
}

func NewRoll(sender port.TextSender, command string) *Roll {
	return &Roll{textSender: sender, command: command, intn: rand.IntN}
}

func (r *Roll) GetCommand() string {
	return r.command
}

func (r *Roll) Usage() string {
	return r.command + " NdN - roll N dice with N sides, e.g. " + r.command + " 2d6"
}

func (r *Roll) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(r.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dice := ParseCommandArgs(message.Text)

	count, sides, err := ParseDice(dice)
	if err != nil {
		l.Debug().Str("dice", dice).Err(err).Msg("rejecting dice notation")
		return reply(ctx, r.textSender, message, rollFormatHint)
	}

	results := make([]string, count)
	sum := 0
	for i := range count {
		n := r.intn(sides) + 1
		sum += n
		results[i] = strconv.Itoa(n)
	}

	return reply(ctx, r.textSender, message,
		fmt.Sprintf("Rolling %s:\nResults: %s\nSum: %d", dice, strings.Join(results, ", "), sum))
}

// ParseDice parses dice notation such as "2d6" into the number of dice and sides per die.
func ParseDice(dice string) (int, int, error) {
	countText, sidesText, ok := strings.Cut(dice, "d")
	if !ok {
		return 0, 0, ErrInvalidDice
	}

	count, err := strconv.Atoi(countText)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidDice, err)
	}

	sides, err := strconv.Atoi(sidesText)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidDice, err)
	}

	if count < 1 || count > MaxDice || sides < 1 || sides > MaxSides {
		return 0, 0, ErrInvalidDice
	}

	return count, sides, nil
}
