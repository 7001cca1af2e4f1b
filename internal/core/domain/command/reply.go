package command

import (
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func requestLogger(command string, message *domain.Message) zerolog.Logger {
	return log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", command).
		Logger()
}

func reply(ctx context.Context, sender port.TextSender, message *domain.Message, text string) error {
	_, err := sender.SendMessageReply(ctx, message, text)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
