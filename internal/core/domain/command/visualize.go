package command

import (
	"context"
	"errors"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNoChartData      = errors.New("no chart data")
	ErrInvalidDataPoint = errors.New("invalid data point")
)

const noChartDataHint = "Please provide data as key:value pairs, e.g. %s bar chart of apples:5 oranges:3 bananas:4"

type Visualize struct {
	renderer    port.ChartRenderer
	imageSender port.ImageSender
	textSender  port.TextSender
	command     string
}

func NewVisualize(renderer port.ChartRenderer, imageSender port.ImageSender, textSender port.TextSender,
	command string) *Visualize {
	return &Visualize{renderer: renderer, imageSender: imageSender, textSender: textSender, command: command}
}

func (v *Visualize) GetCommand() string {
	return v.command
}

func (v *Visualize) Usage() string {
	return v.command + " <bar|line|pie|histogram|scatter|area> <key:value ...> - draw a chart"
}

func (v *Visualize) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(v.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := ParseCommandArgs(message.Text)
	if prompt == "" {
		return reply(ctx, v.textSender, message, "Usage: "+v.Usage())
	}

	chart, err := ParseChartPrompt(prompt)
	if errors.Is(err, ErrNoChartData) {
		return reply(ctx, v.textSender, message, fmt.Sprintf(noChartDataHint, v.command))
	}
	if err != nil {
		return v.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to create visualization: %w", err), message)
	}

	l.Debug().Str("kind", string(chart.Kind)).Int("points", len(chart.Points)).Msg("parsed chart")

	go v.textSender.SendChatAction(ctx, message.ChatID, domain.SendingPhoto)

	img, err := v.renderer.RenderChart(chart)
	if err != nil {
		return v.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to create visualization: %w", err), message)
	}

	err = v.imageSender.SendImageFileReply(ctx, message, "chart.png", img)
	if err != nil {
		return v.textSender.NotifyAndReturnError(ctx, fmt.Errorf("error sending chart: %w", err), message)
	}

	return nil
}

// ParseChartPrompt reads a chart description such as "pie chart of apples:5 oranges:3". The first supported chart
// type appearing as a word wins, defaulting to a bar chart. Every key:value word is a data point; a repeated key
// keeps its first position and its last value.
func ParseChartPrompt(prompt string) (domain.Chart, error) {
	parts := strings.Fields(strings.ToLower(prompt))

	chart := domain.Chart{Kind: domain.BarChart, Title: prompt}
	for _, kind := range domain.ChartKinds {
		if slices.Contains(parts, string(kind)) {
			chart.Kind = kind
			break
		}
	}

	index := make(map[string]int)
	for _, part := range parts {
		if !strings.Contains(part, ":") {
			continue
		}

		fields := strings.Split(part, ":")
		if len(fields) != 2 {
			return domain.Chart{}, fmt.Errorf("%w: %q", ErrInvalidDataPoint, part)
		}

		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
			return domain.Chart{}, fmt.Errorf("%w: %q", ErrInvalidDataPoint, part)
		}

		if i, ok := index[fields[0]]; ok {
			chart.Points[i].Value = value
			continue
		}

		index[fields[0]] = len(chart.Points)
		chart.Points = append(chart.Points, domain.DataPoint{Label: fields[0], Value: value})
	}

	if len(chart.Points) == 0 {
		return domain.Chart{}, ErrNoChartData
	}

	return chart, nil
}
