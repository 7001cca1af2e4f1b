package port

import "context"

type CurrencyConverter interface {
	// Convert converts amount from one ISO currency code to another using current exchange rates.
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

type Encyclopedia interface {
	// Summary returns the first sentences of the article matching query. It returns domain.ErrPageNotFound or
	// domain.ErrDisambiguation when no single article matches.
	Summary(ctx context.Context, query string, sentences int) (string, error)
}

type SentimentAnalyzer interface {
	// Polarity scores text between -1 (negative) and 1 (positive).
	Polarity(text string) float64
}
