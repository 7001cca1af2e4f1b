package command

import (
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"time"
)

type Sentiment struct {
	analyzer   port.SentimentAnalyzer
	textSender port.TextSender
	command    string
}

func NewSentiment(analyzer port.SentimentAnalyzer, sender port.TextSender, command string) *Sentiment {
	return &Sentiment{analyzer: analyzer, textSender: sender, command: command}
}

func (s *Sentiment) GetCommand() string {
	return s.command
}

func (s *Sentiment) Usage() string {
	return s.command + " <text> - analyze the sentiment of a text"
}

func (s *Sentiment) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(s.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text := ParseCommandArgs(message.Text)
	if text == "" {
		return reply(ctx, s.textSender, message, "Usage: "+s.Usage())
	}

	score := s.analyzer.Polarity(text)
	l.Debug().Float64("score", score).Msg("scored text")

	return reply(ctx, s.textSender, message,
		fmt.Sprintf("The sentiment of '%s' is %s (score: %.2f)", text, classifySentiment(score), score))
}

func classifySentiment(score float64) string {
	switch {
	case score > 0:
		return "positive"
	case score < 0:
		return "negative"
	default:
		return "neutral"
	}
}
