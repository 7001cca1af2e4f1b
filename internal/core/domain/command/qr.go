package command

import (
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"time"
)

type QR struct {
	encoder     port.QREncoder
	imageSender port.ImageSender
	textSender  port.TextSender
	command     string
}

func NewQR(encoder port.QREncoder, imageSender port.ImageSender, textSender port.TextSender, command string) *QR {
	return &QR{encoder: encoder, imageSender: imageSender, textSender: textSender, command: command}
}

func (q *QR) GetCommand() string {
	return q.command
}

func (q *QR) Usage() string {
	return q.command + " <data> - encode text or a link as a QR code"
}

func (q *QR) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(q.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data := ParseCommandArgs(message.Text)
	if data == "" {
		return reply(ctx, q.textSender, message, "Usage: "+q.Usage())
	}

	img, err := q.encoder.EncodeQR(data)
	if err != nil {
		return q.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to encode QR code: %w", err), message)
	}

	err = q.imageSender.SendImageFileReply(ctx, message, "qrcode.png", img)
	if err != nil {
		return q.textSender.NotifyAndReturnError(ctx, fmt.Errorf("error sending QR code: %w", err), message)
	}

	return nil
}
