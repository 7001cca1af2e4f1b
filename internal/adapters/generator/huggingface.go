package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"gadgetbot/internal/core/domain"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

const DefaultQAEndpoint = "https://api-inference.huggingface.co/models/distilbert/distilbert-base-cased-distilled-squad"

// HuggingFace answers questions with an extractive QA model hosted on the HuggingFace inference API.
type HuggingFace struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewHuggingFace(endpoint, apiKey string) *HuggingFace {
	if endpoint == "" {
		endpoint = DefaultQAEndpoint
	}

	return &HuggingFace{apiKey: apiKey, endpoint: endpoint, client: &http.Client{}}
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type qaRequest struct {
	Inputs qaInputs `json:"inputs"`
}

type qaResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Error  string  `json:"error"`
}

func (h *HuggingFace) Answer(ctx context.Context, question, passage string) (domain.Answer, error) {
	payloadBuf := new(bytes.Buffer)
	err := json.NewEncoder(payloadBuf).Encode(qaRequest{Inputs: qaInputs{Question: question, Context: passage}})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("error encoding QA request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, payloadBuf)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("error creating QA request: %w", err)
	}

	if h.apiKey != "" {
		req.Header.Add("Authorization", "Bearer "+h.apiKey)
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := h.client.Do(req)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("error executing QA request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("error reading QA response: %w", err)
	}

	log.Debug().Int("status", res.StatusCode).Bytes("body", body).Msg("QA response")

	var result qaResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Answer{}, fmt.Errorf("error unmarshalling QA response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return domain.Answer{}, fmt.Errorf("QA request failed with status %d: %s", res.StatusCode, result.Error)
	}

	return domain.Answer{Text: result.Answer, Score: result.Score}, nil
}
