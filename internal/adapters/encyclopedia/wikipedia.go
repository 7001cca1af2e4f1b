package encyclopedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gadgetbot/internal/adapters/file"
	"gadgetbot/internal/core/domain"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

const DefaultEndpoint = "https://en.wikipedia.org/api/rest_v1"

// Wikipedia looks up article summaries through the Wikipedia REST API.
type Wikipedia struct {
	endpoint string
	client   *http.Client
}

func NewWikipedia(endpoint string) *Wikipedia {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Wikipedia{endpoint: strings.TrimRight(endpoint, "/"), client: &http.Client{Timeout: 10 * time.Second}}
}

type summaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ExtractHTML string `json:"extract_html"`
}

func (w *Wikipedia) Summary(ctx context.Context, query string, sentences int) (string, error) {
	title := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")

	body, err := file.DownloadFile(ctx, w.client, w.endpoint+"/page/summary/"+url.PathEscape(title))
	if err != nil {
		var statusErr *file.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return "", domain.ErrPageNotFound
		}
		return "", fmt.Errorf("error fetching summary: %w", err)
	}

	var page summaryResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return "", fmt.Errorf("error unmarshalling summary: %w", err)
	}

	log.Debug().Str("title", page.Title).Str("type", page.Type).Msg("fetched summary")

	if page.Type == "disambiguation" {
		return "", domain.ErrDisambiguation
	}

	text := page.Extract
	if page.ExtractHTML != "" {
		if t, err := htmlToText(page.ExtractHTML); err == nil && t != "" {
			text = t
		}
	}

	if text == "" {
		return "", domain.ErrPageNotFound
	}

	return firstSentences(text, sentences), nil
}

func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, sup.reference").Remove()

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// firstSentences returns the leading n sentences of text. A sentence ends at '.', '!' or '?' followed by
// whitespace or the end of text.
func firstSentences(text string, n int) string {
	runes := []rune(strings.TrimSpace(text))
	count := 0

	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}

		count++
		if count == n {
			return string(runes[:i+1])
		}
	}

	return string(runes)
}
