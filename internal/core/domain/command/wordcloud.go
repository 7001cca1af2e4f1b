package command

import (
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"time"
)

type WordCloud struct {
	renderer    port.WordCloudRenderer
	imageSender port.ImageSender
	textSender  port.TextSender
	command     string
}

func NewWordCloud(renderer port.WordCloudRenderer, imageSender port.ImageSender, textSender port.TextSender,
	command string) *WordCloud {
	return &WordCloud{renderer: renderer, imageSender: imageSender, textSender: textSender, command: command}
}

func (w *WordCloud) GetCommand() string {
	return w.command
}

func (w *WordCloud) Usage() string {
	return w.command + " <text> - draw a word cloud"
}

func (w *WordCloud) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(w.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text := ParseCommandArgs(message.Text)
	if text == "" {
		return reply(ctx, w.textSender, message, "Usage: "+w.Usage())
	}

	go w.textSender.SendChatAction(ctx, message.ChatID, domain.SendingPhoto)

	img, err := w.renderer.RenderWordCloud(text)
	if err != nil {
		return w.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to render word cloud: %w", err), message)
	}

	err = w.imageSender.SendImageFileReply(ctx, message, "wordcloud.png", img)
	if err != nil {
		return w.textSender.NotifyAndReturnError(ctx, fmt.Errorf("error sending word cloud: %w", err), message)
	}

	return nil
}
