package sender

import (
	"bytes"
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// TelegramMessageLimit is the maximum length of a single Telegram text message.
const TelegramMessageLimit = 4096

// ChatActionRepeat is how often a chat action is re-sent; Telegram clears it after five seconds.
var ChatActionRepeat = 5 * time.Second

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

// SendMessageReply replies to message, splitting text that exceeds TelegramMessageLimit. It returns the ID of the
// last message sent.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	var id int

	for _, chunk := range chunk(text, TelegramMessageLimit) {
		params := &bot.SendMessageParams{
			ChatID: message.ChatID,
			Text:   chunk,
		}
		if message.ID != 0 {
			params.ReplyParameters = &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			}
		}

		sent, err := s.bot.SendMessage(ctx, params)
		if err != nil {
			return 0, err
		}

		if sent != nil {
			id = sent.ID
		}
	}

	return id, nil
}

func (s *Telegram) SendImageFileReply(ctx context.Context, message *domain.Message, name string, file []byte) error {
	params := &bot.SendPhotoParams{
		ChatID: message.ChatID,
		Photo:  &models.InputFileUpload{Filename: name, Data: bytes.NewReader(file)},
		ReplyParameters: &models.ReplyParameters{
			MessageID: message.ID,
			ChatID:    message.ChatID,
		},
	}

	_, err := s.bot.SendPhoto(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("failed to send photo response")
		return err
	}

	return nil
}

// NotifyAndReturnError tells the user that their command failed and hands err back to the caller.
func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	log.Error().Err(err).Int64("chatId", message.ChatID).Int("messageId", message.ID).Msg("command failed")

	_, sendErr := s.SendMessageReply(ctx, message, "An error occurred: "+err.Error())
	if sendErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, sendErr)
	}

	return err
}

// SendChatAction keeps the action visible in the chat until ctx is done.
func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	log.Debug().Int64("chatId", chatID).Msg("starting action routine")

	for {
		log.Debug().Int64("chatId", chatID).Msg("transmitting action")
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatAction(action),
		})
		if err != nil {
			log.Debug().Err(err).Msg("error sending chat action")
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Int64("chatId", chatID).Msg("done, stopping action routine")
			return
		case <-time.After(ChatActionRepeat):
		}
	}
}

func chunk(text string, size int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/size+1)
	for len(runes) > 0 {
		n := min(size, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}

	return chunks
}
