package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gadgetbot/internal/adapters/file"
	"gadgetbot/internal/core/domain"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultEndpoint = "https://api.frankfurter.app"
	DefaultCacheTTL = 10 * time.Minute
	cacheSize       = 256
	fetchTimeout    = 10 * time.Second
)

// Frankfurter converts currencies with the reference rates published by the ECB through frankfurter.app.
// Rates are cached per currency pair and concurrent lookups of the same pair share a single request.
type Frankfurter struct {
	endpoint string
	client   *http.Client
	rates    *expirable.LRU[string, float64]
	group    singleflight.Group
}

func NewFrankfurter(endpoint string, ttl time.Duration) *Frankfurter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Frankfurter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		rates:    expirable.NewLRU[string, float64](cacheSize, nil, ttl),
	}
}

type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (f *Frankfurter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	rate, err := f.rate(ctx, from, to)
	if err != nil {
		return 0, err
	}

	return amount * rate, nil
}

func (f *Frankfurter) rate(ctx context.Context, from, to string) (float64, error) {
	key := from + "/" + to

	if rate, ok := f.rates.Get(key); ok {
		log.Debug().Str("pair", key).Msg("exchange rate cache hit")
		return rate, nil
	}

	ch := f.group.DoChan(key, func() (interface{}, error) {
		// the fetch serves every caller waiting on key and outlives the first one
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		rate, err := f.fetch(fetchCtx, from, to)
		if err != nil {
			return nil, err
		}

		f.rates.Add(key, rate)
		return rate, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(float64), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (f *Frankfurter) fetch(ctx context.Context, from, to string) (float64, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	body, err := file.DownloadFile(ctx, f.client, f.endpoint+"/latest?"+query.Encode())
	if err != nil {
		var statusErr *file.StatusError
		if errors.As(err, &statusErr) &&
			(statusErr.StatusCode == http.StatusNotFound || statusErr.StatusCode == http.StatusUnprocessableEntity) {
			return 0, fmt.Errorf("%w: %s/%s", domain.ErrUnknownCurrency, from, to)
		}
		return 0, fmt.Errorf("error fetching exchange rate: %w", err)
	}

	var result latestResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("error unmarshalling exchange rate response: %w", err)
	}

	rate, ok := result.Rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s", domain.ErrUnknownCurrency, from, to)
	}

	log.Debug().Str("from", from).Str("to", to).Float64("rate", rate).Str("date", result.Date).
		Msg("fetched exchange rate")

	return rate, nil
}
