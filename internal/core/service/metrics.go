package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics holds the Prometheus collectors of the bot. A nil *Metrics is valid and records nothing.
type Metrics struct {
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	gateOutcomes    *prometheus.CounterVec
	remindersActive prometheus.Gauge
}

// NewMetrics registers the collectors with reg. Registration errors panic, mirroring promauto.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gadgetbot",
				Name:      "commands_total",
				Help:      "Commands handled, by command and status.",
			},
			[]string{"command", "status"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gadgetbot",
				Name:      "command_duration_seconds",
				Help:      "Time spent responding to a command.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		gateOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gadgetbot",
				Subsystem: "gate",
				Name:      "calls_total",
				Help:      "Gated text generation attempts, by outcome.",
			},
			[]string{"outcome"},
		),
		remindersActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "gadgetbot",
				Name:      "reminders_pending",
				Help:      "Reminders waiting to fire.",
			},
		),
	}

	reg.MustRegister(m.commands, m.commandDuration, m.gateOutcomes, m.remindersActive)

	return m
}

func (m *Metrics) ObserveCommand(command string, took time.Duration, err error) {
	if m == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}

	m.commands.WithLabelValues(command, status).Inc()
	m.commandDuration.WithLabelValues(command).Observe(took.Seconds())
}

func (m *Metrics) ObserveGate(outcome string) {
	if m == nil {
		return
	}

	m.gateOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetRemindersPending(n int) {
	if m == nil {
		return
	}

	m.remindersActive.Set(float64(n))
}

// ServeMetrics exposes the default registry on addr until ctx is cancelled.
func ServeMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("address", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Err(err).Msg("metrics server failed")
	}
}
