package exchange

import (
	"context"
	"gadgetbot/internal/core/domain"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrankfurter_Convert(t *testing.T) {
	tests := []struct {
		name      string
		from, to  string
		amount    float64
		status    int
		body      string
		want      float64
		wantErrIs error
		wantErr   bool
	}{
		{
			name:   "success",
			from:   "USD",
			to:     "EUR",
			amount: 100,
			status: http.StatusOK,
			body:   `{"amount":1.0,"base":"USD","date":"2026-10-16","rates":{"EUR":0.5}}`,
			want:   50,
		},
		{
			name:      "unknown currency",
			from:      "USD",
			to:        "XXX",
			amount:    1,
			status:    http.StatusNotFound,
			body:      `{"message":"not found"}`,
			wantErrIs: domain.ErrUnknownCurrency,
		},
		{
			name:      "rate missing from response",
			from:      "USD",
			to:        "GBP",
			amount:    1,
			status:    http.StatusOK,
			body:      `{"amount":1.0,"base":"USD","rates":{}}`,
			wantErrIs: domain.ErrUnknownCurrency,
		},
		{
			name:    "server error",
			from:    "USD",
			to:      "EUR",
			amount:  1,
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			from:    "USD",
			to:      "EUR",
			amount:  1,
			status:  http.StatusOK,
			body:    `{not_json}`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/latest", r.URL.Path)
				assert.Equal(t, tc.from, r.URL.Query().Get("from"))
				assert.Equal(t, tc.to, r.URL.Query().Get("to"))
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			f := NewFrankfurter(srv.URL, time.Minute)

			got, err := f.Convert(t.Context(), tc.amount, tc.from, tc.to)
			switch {
			case tc.wantErrIs != nil:
				require.ErrorIs(t, err, tc.wantErrIs)
			case tc.wantErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestFrankfurter_CachesRates(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"base":"EUR","rates":{"USD":2}}`))
	}))
	defer srv.Close()

	f := NewFrankfurter(srv.URL, time.Minute)

	for range 3 {
		got, err := f.Convert(t.Context(), 10, "EUR", "USD")
		require.NoError(t, err)
		assert.InDelta(t, 20.0, got, 1e-9)
	}

	assert.Equal(t, int32(1), hits.Load())
}

func TestFrankfurter_SameCurrency(t *testing.T) {
	f := NewFrankfurter("http://127.0.0.1:0", 0)

	got, err := f.Convert(t.Context(), 42, "EUR", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 42.0, got, 1e-9)
}

func TestFrankfurter_CancelledCallerDoesNotFailOthers(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`{"base":"EUR","rates":{"USD":2}}`))
	}))
	defer srv.Close()

	f := NewFrankfurter(srv.URL, time.Minute)

	firstCtx, cancelFirst := context.WithCancel(t.Context())
	firstErr := make(chan error, 1)
	go func() {
		_, err := f.Convert(firstCtx, 1, "EUR", "USD")
		firstErr <- err
	}()

	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)

	secondRes := make(chan float64, 1)
	secondErr := make(chan error, 1)
	go func() {
		got, err := f.Convert(t.Context(), 10, "EUR", "USD")
		secondRes <- got
		secondErr <- err
	}()

	cancelFirst()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.NoError(t, <-secondErr)
	assert.InDelta(t, 20.0, <-secondRes, 1e-9)
	assert.Equal(t, int32(1), hits.Load())
}
