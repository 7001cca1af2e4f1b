package command

import (
	"context"
	"fmt"
	"gadgetbot/internal/core/domain"
	"gadgetbot/internal/core/port"
	"gadgetbot/internal/core/service"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/rs/zerolog/log"
)

type Debug struct {
	textSender port.TextSender
	gate       service.Limiter
	scheduler  service.Scheduler
	started    time.Time
	command    string
}

func NewDebug(sender port.TextSender, gate service.Limiter, scheduler service.Scheduler, command string) *Debug {
	return &Debug{textSender: sender, gate: gate, scheduler: scheduler, started: time.Now(), command: command}
}

func (d *Debug) GetCommand() string {
	return d.command
}

func (d *Debug) Usage() string {
	return d.command + " - show bot runtime statistics"
}

const kb = 1024
const debugTemplate = `uptime: %s
allocated mem: %d KB
heap: %d KB
goroutines: %d
pending reminders: %d
generations today: %d/%d
compiled with %s
`

func (d *Debug) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := requestLogger(d.command, message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data := []metrics.Sample{
		{Name: "/memory/classes/heap/objects:bytes"},
		{Name: "/memory/classes/total:bytes"},
	}
	metrics.Read(data)

	for _, sample := range data {
		log.Debug().Str("name", sample.Name).Uint64("value", sample.Value.Uint64()).Msg("runtime metric")
	}

	usage := d.gate.Usage()

	return reply(ctx, d.textSender, message,
		fmt.Sprintf(
			debugTemplate,
			time.Since(d.started).Truncate(time.Second),
			data[1].Value.Uint64()/kb,
			data[0].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			d.scheduler.Pending(),
			usage.CallsToday, usage.DailyLimit,
			runtime.Version(),
		))
}
