package handler

import (
	"context"
	"errors"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/domain/command"
	"gadgetbot/internal/core/port"
	"gadgetbot/internal/core/service"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

var ErrHandlerPanicked = errors.New("command handler panicked")

type Command struct {
	commandRegistry port.CommandRegistry
	timeout         time.Duration
	metrics         *service.Metrics
	wg              sync.WaitGroup
}

func NewCommand(commandRegistry port.CommandRegistry, timeout time.Duration, metrics *service.Metrics) *Command {
	return &Command{commandRegistry: commandRegistry, timeout: timeout, metrics: metrics}
}

// Handle dispatches a text update to its command handler. The handler runs in its own goroutine so a slow command
// does not hold up the update loop.
func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	log.Debug().Str("message", update.Message.Text).Msg("received command")

	cmd := command.ParseCommand(update.Message.Text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Err(err).Msg("no handler for command")
		return
	}

	message := &domain.Message{
		ID:       update.Message.ID,
		ChatID:   update.Message.Chat.ID,
		Username: getUserNameOrFirstName(update.Message.From),
		Text:     update.Message.Text,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		start := time.Now()
		err := c.respond(context.WithoutCancel(ctx), commandHandler, message)
		c.metrics.ObserveCommand(cmd, time.Since(start), err)
		if err != nil {
			log.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

// respond runs the command handler, turning a panic into an error so one message cannot stop the bot.
func (c *Command) respond(ctx context.Context, commandHandler port.Command, message *domain.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("command handler panicked")
			err = fmt.Errorf("%w: %v", ErrHandlerPanicked, r)
		}
	}()

	return commandHandler.Respond(ctx, c.timeout, message)
}

// Wait blocks until all dispatched commands have returned.
func (c *Command) Wait() {
	c.wg.Wait()
}

func getUserNameOrFirstName(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
