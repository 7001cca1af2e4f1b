package service

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Scheduler runs delayed notifications outside the lifetime of the command that created them.
type Scheduler interface {
	Schedule(delay time.Duration, fire func(ctx context.Context)) (uuid.UUID, error)
	Pending() int
}

// ReminderScheduler keeps one goroutine per pending reminder. All reminders are dropped when the
// scheduler's context is cancelled.
type ReminderScheduler struct {
	ctx     context.Context
	pending sync.Map
	metrics *Metrics
	wg      sync.WaitGroup
}

func NewReminderScheduler(ctx context.Context, metrics *Metrics) *ReminderScheduler {
	return &ReminderScheduler{ctx: ctx, metrics: metrics}
}

func (s *ReminderScheduler) Schedule(delay time.Duration, fire func(ctx context.Context)) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	l := log.With().Str("reminder", id.String()).Logger()

	s.pending.Store(id, time.Now().Add(delay))
	s.metrics.SetRemindersPending(s.Pending())
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer func() {
			s.pending.Delete(id)
			s.metrics.SetRemindersPending(s.Pending())
		}()

		t := time.NewTimer(delay)
		defer t.Stop()

		l.Debug().Dur("delay", delay).Msg("reminder scheduled")

		select {
		case <-t.C:
			l.Debug().Msg("firing reminder")
			fire(s.ctx)
		case <-s.ctx.Done():
			l.Debug().Msg("dropping reminder, shutting down")
		}
	}()

	return id, nil
}

func (s *ReminderScheduler) Pending() int {
	n := 0
	s.pending.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// Wait blocks until every scheduled reminder has fired or been dropped.
func (s *ReminderScheduler) Wait() {
	s.wg.Wait()
}
