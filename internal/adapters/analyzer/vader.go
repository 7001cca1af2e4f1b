package analyzer

import (
	"github.com/jonreiter/govader"
	"github.com/rs/zerolog/log"
)

// Vader scores sentiment with the VADER lexicon. The analyzer is read-only after construction and safe for
// concurrent use.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the normalized compound score of text.
func (v *Vader) Polarity(text string) float64 {
	scores := v.analyzer.PolarityScores(text)

	log.Debug().
		Float64("positive", scores.Positive).
		Float64("negative", scores.Negative).
		Float64("neutral", scores.Neutral).
		Float64("compound", scores.Compound).
		Msg("sentiment scores")

	return scores.Compound
}
