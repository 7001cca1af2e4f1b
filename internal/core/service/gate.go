package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultMinInterval = time.Second
	DefaultDailyLimit  = 1000
)

// DailyLimitReached is returned in place of the action's result once the daily quota is used up.
const DailyLimitReached = "Daily limit reached. Please try again tomorrow."

// Limiter guards calls to a single external API.
type Limiter interface {
	// Do runs action once the call is permitted, or returns DailyLimitReached without running it.
	Do(ctx context.Context, action func(ctx context.Context) (string, error)) (string, error)
	// Usage reports the current state of the daily quota.
	Usage() Usage
}

type Usage struct {
	CallsToday int
	DailyLimit int
	LastCall   time.Time
}

// Gate spaces calls at least minInterval apart and caps the number of calls per calendar day.
// The day counter is reset lazily on the first attempt after midnight.
type Gate struct {
	spacing    *rate.Limiter
	dailyLimit int
	now        func() time.Time
	metrics    *Metrics

	mu         sync.Mutex
	lastCall   time.Time
	callsToday int
	day        time.Time
}

type GateOption func(*Gate)

// WithClock replaces time.Now for the day bookkeeping.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

func WithMetrics(m *Metrics) GateOption {
	return func(g *Gate) {
		g.metrics = m
	}
}

func NewGate(minInterval time.Duration, dailyLimit int, opts ...GateOption) *Gate {
	g := &Gate{
		spacing:    rate.NewLimiter(rate.Every(minInterval), 1),
		dailyLimit: dailyLimit,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.day = dayOf(g.now())

	return g
}

func (g *Gate) Do(ctx context.Context, action func(ctx context.Context) (string, error)) (string, error) {
	if err := g.spacing.Wait(ctx); err != nil {
		return "", err
	}

	if !g.admit() {
		log.Info().Int("limit", g.dailyLimit).Msg("daily call limit reached")
		g.metrics.ObserveGate("quota_exceeded")
		return DailyLimitReached, nil
	}

	g.metrics.ObserveGate("permitted")

	return action(ctx)
}

// admit performs the rollover, quota check and bookkeeping as one critical section.
func (g *Gate) admit() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	if today := dayOf(now); today.After(g.day) {
		log.Debug().Time("day", today).Int("calls", g.callsToday).Msg("resetting daily call counter")
		g.callsToday = 0
		g.day = today
	}

	if g.callsToday >= g.dailyLimit {
		return false
	}

	g.callsToday++
	g.lastCall = now

	return true
}

func (g *Gate) Usage() Usage {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := Usage{CallsToday: g.callsToday, DailyLimit: g.dailyLimit, LastCall: g.lastCall}
	if dayOf(g.now()).After(g.day) {
		u.CallsToday = 0
	}

	return u
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
