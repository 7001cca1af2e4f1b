package command

import (
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"math"
	"gadgetbot/internal/core/service"
	"strings"
	"time"
)

const invalidDurationHint = "Invalid time format. Please use a combination of numbers and 's' (seconds), " +
	"'m' (minutes), or 'h' (hours)."

type Reminder struct {
	scheduler   service.Scheduler
	textSender  port.TextSender
	maxDuration time.Duration
	command     string
}

func NewReminder(scheduler service.Scheduler, sender port.TextSender, maxDuration time.Duration,
	command string) *Reminder {
	return &Reminder{scheduler: scheduler, textSender: sender, maxDuration: maxDuration, command: command}
}

func (r *Reminder) GetCommand() string {
	return r.command
}

func (r *Reminder) Usage() string {
	return r.command + " <time> <message> - remind you later, e.g. " + r.command + " 1h30m take out the trash"
}

func (r *Reminder) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(r.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	token, text, _ := strings.Cut(ParseCommandArgs(message.Text), " ")
	text = strings.TrimSpace(text)
	if token == "" || text == "" {
		return reply(ctx, r.textSender, message, "Usage: "+r.Usage())
	}

	seconds, err := ParseDuration(token)
	if err != nil {
		l.Debug().Str("token", token).Msg("rejecting duration")
		return reply(ctx, r.textSender, message, invalidDurationHint)
	}

	if int64(seconds) > math.MaxInt64/int64(time.Second) {
		l.Debug().Str("token", token).Msg("rejecting duration")
		return reply(ctx, r.textSender, message, invalidDurationHint)
	}

	delay := time.Duration(seconds) * time.Second
	if r.maxDuration > 0 && delay > r.maxDuration {
		return reply(ctx, r.textSender, message,
			fmt.Sprintf("Reminders can be set at most %s ahead.", r.maxDuration))
	}

	target := *message
	notice := fmt.Sprintf("%s Reminder: %s", message.Username, text)

	id, err := r.scheduler.Schedule(delay, func(ctx context.Context) {
		if err := reply(ctx, r.textSender, &target, notice); err != nil {
			l.Err(err).Msg("failed to deliver reminder")
		}
	})
	if err != nil {
		return r.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to schedule reminder: %w", err), message)
	}

	l.Debug().Str("reminder", id.String()).Dur("delay", delay).Msg("reminder scheduled")

	return reply(ctx, r.textSender, message, fmt.Sprintf("Okay, I'll remind you to '%s' in %s.", text, token))
}
