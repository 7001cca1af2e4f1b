package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func okAction(calls *atomic.Int32) func(context.Context) (string, error) {
	return func(_ context.Context) (string, error) {
		calls.Add(1)
		return "ok", nil
	}
}

func TestGate_SpacesConsecutiveCalls(t *testing.T) {
	g := NewGate(time.Second, DefaultDailyLimit)

	var starts []time.Time
	action := func(_ context.Context) (string, error) {
		starts = append(starts, time.Now())
		return "ok", nil
	}

	_, err := g.Do(t.Context(), action)
	require.NoError(t, err)
	_, err = g.Do(t.Context(), action)
	require.NoError(t, err)

	require.Len(t, starts, 2)
	assert.GreaterOrEqual(t, starts[1].Sub(starts[0]), time.Second-10*time.Millisecond)
}

func TestGate_SpacingWaitHonoursContext(t *testing.T) {
	g := NewGate(time.Hour, DefaultDailyLimit)

	var calls atomic.Int32
	_, err := g.Do(t.Context(), okAction(&calls))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err = g.Do(ctx, okAction(&calls))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, g.Usage().CallsToday)
}

func TestGate_DailyLimit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	g := NewGate(0, DefaultDailyLimit, WithClock(clock.Now))

	var calls atomic.Int32
	for i := range DefaultDailyLimit {
		got, err := g.Do(t.Context(), okAction(&calls))
		require.NoError(t, err)
		require.Equal(t, "ok", got, "call %d", i+1)
	}
	assert.Equal(t, int32(DefaultDailyLimit), calls.Load())

	got, err := g.Do(t.Context(), okAction(&calls))
	require.NoError(t, err)
	assert.Equal(t, DailyLimitReached, got)
	assert.Equal(t, int32(DefaultDailyLimit), calls.Load(), "action must not run once the quota is used up")
	assert.Equal(t, DefaultDailyLimit, g.Usage().CallsToday)

	clock.Advance(14 * time.Hour)

	got, err = g.Do(t.Context(), okAction(&calls))
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, g.Usage().CallsToday)
}

func TestGate_SameDayDoesNotReset(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 0, 0, 1, 0, time.UTC)}
	g := NewGate(0, 2, WithClock(clock.Now))

	var calls atomic.Int32
	_, _ = g.Do(t.Context(), okAction(&calls))
	_, _ = g.Do(t.Context(), okAction(&calls))

	clock.Advance(23 * time.Hour)

	got, err := g.Do(t.Context(), okAction(&calls))
	require.NoError(t, err)
	assert.Equal(t, DailyLimitReached, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGate_PropagatesActionError(t *testing.T) {
	g := NewGate(0, DefaultDailyLimit)
	wantErr := errors.New("upstream down")

	_, err := g.Do(t.Context(), func(_ context.Context) (string, error) {
		return "", wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, g.Usage().CallsToday, "failed calls still count against the quota")
}

func TestGate_ConcurrentCallersNeverExceedLimit(t *testing.T) {
	g := NewGate(0, 50)

	var calls atomic.Int32
	var wg sync.WaitGroup
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Do(context.Background(), okAction(&calls))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), calls.Load())
	assert.Equal(t, 50, g.Usage().CallsToday)
}

func TestGate_UsageAfterRollover(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)}
	g := NewGate(0, 10, WithClock(clock.Now))

	var calls atomic.Int32
	_, _ = g.Do(t.Context(), okAction(&calls))
	usage := g.Usage()
	assert.Equal(t, 1, usage.CallsToday)
	assert.Equal(t, 10, usage.DailyLimit)
	assert.Equal(t, clock.Now(), usage.LastCall)

	clock.Advance(3 * time.Hour)
	assert.Equal(t, 0, g.Usage().CallsToday)
}

func TestGate_RecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	g := NewGate(0, 1, WithMetrics(m))

	var calls atomic.Int32
	_, _ = g.Do(t.Context(), okAction(&calls))
	_, _ = g.Do(t.Context(), okAction(&calls))

	assert.InDelta(t, 1, testutil.ToFloat64(m.gateOutcomes.WithLabelValues("permitted")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.gateOutcomes.WithLabelValues("quota_exceeded")), 0)
}
